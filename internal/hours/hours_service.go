package hours

import (
	"context"
	"database/sql"
	"time"

	hourserrors "go-nomina/internal/hours/errors"
	"go-nomina/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=hours_service.go -destination=mock/hours_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateHourRecordRequest) (HourRecordResponse, error)
	GetAll(ctx context.Context, companyID string, filter QueryFilter) ([]HourRecordResponse, error)
	GetByID(ctx context.Context, companyID, id string) (HourRecordResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateHourRecordRequest) (HourRecordResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	GetPeriodTotals(ctx context.Context, companyID, employeeID, period string) (PeriodTotalsResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("hours.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("hours.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateHourRecordRequest,
) (HourRecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create hour record requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("quincena", req.Period),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return HourRecordResponse{}, hourserrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return HourRecordResponse{}, hourserrors.ErrInvalidEmployeeID
	}

	if !ValidPeriod(req.Period) {
		return HourRecordResponse{}, hourserrors.ErrInvalidPeriod
	}

	if err := req.Quantities.Validate(); err != nil {
		s.logger.Debug("hour record rejected",
			zap.String("request_id", rid),
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return HourRecordResponse{}, hourserrors.FromValidation(err)
	}

	belongs, err := s.repo.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		s.logger.Error("employee ownership check failed", zap.Error(err))
		return HourRecordResponse{}, err
	}
	if !belongs {
		return HourRecordResponse{}, hourserrors.ErrInvalidEmployeeID
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return HourRecordResponse{}, hourserrors.FromValidation(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HourRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record := &HourRecord{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		Date:       date,
		Period:     req.Period,
		DebtReason: req.DebtReason,
		DebtAmount: decimal.NewFromFloat(req.DebtAmount),
		Notes:      req.Notes,
	}
	record.setQuantities(req.Quantities)

	if err := qtx.Create(ctx, record); err != nil {
		s.logger.Error("create hour record persist failed", zap.Error(err))
		return HourRecordResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return HourRecordResponse{}, err
	}

	s.logger.Info("create hour record success",
		zap.String("request_id", rid),
		zap.String("record_id", record.ID.String()),
		zap.Float64("total_horas", req.Quantities.Total()),
	)

	return mapRecordToResponse(*record), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filter QueryFilter,
) ([]HourRecordResponse, error) {
	if filter.Period != "" && !ValidPeriod(filter.Period) {
		return nil, hourserrors.ErrInvalidPeriod
	}

	records, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		s.logger.Error("get all hour records failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := make([]HourRecordResponse, len(records))
	for i, record := range records {
		resp[i] = mapRecordToResponse(record)
	}
	return resp, nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (HourRecordResponse, error) {
	record, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return HourRecordResponse{}, mapRepositoryError(err)
	}
	return mapRecordToResponse(*record), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateHourRecordRequest,
) (HourRecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if err := req.Quantities.Validate(); err != nil {
		return HourRecordResponse{}, hourserrors.FromValidation(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HourRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return HourRecordResponse{}, mapRepositoryError(err)
	}

	record.setQuantities(req.Quantities)
	record.DebtReason = req.DebtReason
	record.DebtAmount = decimal.NewFromFloat(req.DebtAmount)
	record.Notes = req.Notes

	if err := qtx.Update(ctx, record); err != nil {
		s.logger.Error("update hour record persist failed", zap.Error(err))
		return HourRecordResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return HourRecordResponse{}, err
	}

	s.logger.Info("update hour record success",
		zap.String("request_id", rid),
		zap.String("record_id", id),
	)

	return mapRecordToResponse(*record), nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

// GetPeriodTotals sums every record of (employee, quincena) per category.
// An employee with no records in the period gets all-zero totals, not an
// error, so payroll can still run for them.
func (s *service) GetPeriodTotals(
	ctx context.Context,
	companyID, employeeID, period string,
) (PeriodTotalsResponse, error) {
	if !ValidPeriod(period) {
		return PeriodTotalsResponse{}, hourserrors.ErrInvalidPeriod
	}

	records, err := s.repo.FindByEmployeeAndPeriod(ctx, companyID, employeeID, period)
	if err != nil {
		s.logger.Error("period totals lookup failed", zap.Error(err))
		return PeriodTotalsResponse{}, mapRepositoryError(err)
	}

	var totals HourQuantities
	for _, record := range records {
		totals = totals.Add(record.Quantities())
	}

	return PeriodTotalsResponse{
		EmployeeID: employeeID,
		Period:     period,
		Quantities: totals,
		TotalHours: totals.Total(),
		Records:    len(records),
	}, nil
}

func mapRecordToResponse(record HourRecord) HourRecordResponse {
	debt, _ := record.DebtAmount.Float64()
	q := record.Quantities()

	return HourRecordResponse{
		ID:         record.ID.String(),
		EmployeeID: record.EmployeeID.String(),
		Date:       record.Date.Format("2006-01-02"),
		Period:     record.Period,
		Quantities: q,
		TotalHours: q.Total(),
		DebtReason: record.DebtReason,
		DebtAmount: debt,
		Notes:      record.Notes,
	}
}
