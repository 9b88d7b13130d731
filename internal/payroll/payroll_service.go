package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-nomina/internal/employee"
	"go-nomina/internal/events"
	"go-nomina/internal/hours"
	"go-nomina/internal/messaging/kafka"
	payrollerrors "go-nomina/internal/payroll/errors"
	"go-nomina/internal/settings"
	"go-nomina/internal/shared/contextutil"
	"go-nomina/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Calculate(ctx context.Context, companyID, employeeID, period, createdBy string) (BatchResponse, error)
	CalculateBatch(ctx context.Context, companyID string, req BatchCalculateRequest, createdBy string) (BatchResponse, error)
	GetAll(ctx context.Context, companyID string, filter QueryFilter) ([]BatchResponse, error)
	GetByID(ctx context.Context, companyID, id string) (BatchResponse, error)
	MarkPaid(ctx context.Context, companyID, id string) (BatchResponse, error)
	Void(ctx context.Context, companyID, id string) (BatchResponse, error)
	RequestPayslip(ctx context.Context, companyID, batchID, entryID, requestedBy string) error
	GeneratePayslip(ctx context.Context, companyID, batchID, entryID string) (string, error)
	PayslipPath(ctx context.Context, companyID, batchID, entryID string) (string, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	hoursRepo    hours.Repository
	settings     settings.Service
	counter      counter.Repository
	outbox       kafka.OutboxRepository
	payslips     *PayslipWriter
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	hoursRepo hours.Repository,
	settingsService settings.Service,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	payslips *PayslipWriter,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		hoursRepo:    hoursRepo,
		settings:     settingsService,
		counter:      counterRepo,
		outbox:       outboxRepo,
		payslips:     payslips,
		logger:       l,
	}
}

// buildCalcConfig turns the cached settings snapshot into the calculator's
// typed configuration.
func buildCalcConfig(cfg settings.SettingsResponse) CalcConfig {
	hourTypes := make(map[string]HourTypeRate, len(cfg.HourTypes))
	for _, rate := range cfg.HourTypes {
		hourTypes[rate.Category] = HourTypeRate{
			DisplayName:      rate.DisplayName,
			SurchargePct:     decimal.NewFromFloat(rate.SurchargePct),
			AppliesPermanent: rate.AppliesPermanent,
			AppliesTemporary: rate.AppliesTemporary,
		}
	}
	return CalcConfig{
		MinimumSalary:      decimal.NewFromFloat(cfg.MinimumSalary),
		TransportAllowance: decimal.NewFromFloat(cfg.TransportAllowance),
		HealthPct:          decimal.NewFromFloat(cfg.HealthPct),
		PensionPct:         decimal.NewFromFloat(cfg.PensionPct),
		HourlyRate:         decimal.NewFromFloat(cfg.HourlyRate),
		HourTypes:          hourTypes,
	}
}

func toEmployeeInput(empl employee.Employee) EmployeeInput {
	return EmployeeInput{
		ID:              empl.ID.String(),
		Name:            empl.FullName,
		NationalID:      empl.NationalID,
		EmploymentType:  empl.EmploymentType,
		BaseSalary:      empl.BaseSalary,
		DeductHealth:    empl.DeductHealth,
		DeductPension:   empl.DeductPension,
		DeductTransport: empl.DeductTransport,
		Debt:            empl.ConsumerDebt,
	}
}

func (s *service) Calculate(
	ctx context.Context,
	companyID, employeeID, period, createdBy string,
) (BatchResponse, error) {
	empl, err := s.employeeRepo.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BatchResponse{}, payrollerrors.ErrEmployeeNotFound
		}
		return BatchResponse{}, err
	}

	return s.runCalculation(ctx, companyID, []employee.Employee{*empl}, period, createdBy)
}

func (s *service) CalculateBatch(
	ctx context.Context,
	companyID string,
	req BatchCalculateRequest,
	createdBy string,
) (BatchResponse, error) {
	var employees []employee.Employee

	if len(req.EmployeeIDs) == 0 {
		all, err := s.employeeRepo.FindAllByCompany(ctx, companyID)
		if err != nil {
			return BatchResponse{}, err
		}
		employees = all
	} else {
		for _, id := range req.EmployeeIDs {
			empl, err := s.employeeRepo.FindByIDAndCompany(ctx, companyID, id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return BatchResponse{}, payrollerrors.ErrEmployeeNotFound
				}
				return BatchResponse{}, err
			}
			employees = append(employees, *empl)
		}
	}

	return s.runCalculation(ctx, companyID, employees, req.Period, createdBy)
}

func (s *service) runCalculation(
	ctx context.Context,
	companyID string,
	employees []employee.Employee,
	period, createdBy string,
) (BatchResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return BatchResponse{}, payrollerrors.ErrInvalidCompanyID
	}
	if !hours.ValidPeriod(period) {
		return BatchResponse{}, payrollerrors.ErrInvalidPeriod
	}
	if len(employees) == 0 {
		return BatchResponse{}, payrollerrors.ErrNoEmployees
	}

	s.logger.Debug("payroll calculation requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("quincena", period),
		zap.Int("employees", len(employees)),
	)

	cfg, err := s.settings.Get(ctx, companyID)
	if err != nil {
		return BatchResponse{}, err
	}

	calc, err := NewCalculator(buildCalcConfig(cfg))
	if err != nil {
		s.logger.Warn("calculator refused configuration",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
		return BatchResponse{}, err
	}

	inputs := make([]EmployeeInput, len(employees))
	hoursByEmployee := make(map[string]hours.HourQuantities, len(employees))
	for i, empl := range employees {
		inputs[i] = toEmployeeInput(empl)

		records, err := s.hoursRepo.FindByEmployeeAndPeriod(ctx, companyID, empl.ID.String(), period)
		if err != nil {
			return BatchResponse{}, err
		}
		var totals hours.HourQuantities
		for _, record := range records {
			totals = totals.Add(record.Quantities())
		}
		hoursByEmployee[empl.ID.String()] = totals
	}

	batchResult := calc.CalculateBatch(inputs, hoursByEmployee, period)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BatchResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	nextVal, err := s.counter.GetNextValue(ctx, companyID, counter.TypePayrollBatch)
	if err != nil {
		s.logger.Error("payroll batch number generation failed", zap.Error(err))
		return BatchResponse{}, err
	}

	batch := &PayrollBatch{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		BatchNumber:   fmt.Sprintf("NOM-%06d", nextVal),
		Period:        period,
		Status:        StatusDraft,
		EmployeeCount: len(batchResult.Results),
		TotalHours:    batchResult.TotalHours,
		Gross:         batchResult.Gross,
		Deductions:    batchResult.Deductions,
		Net:           batchResult.Net,
	}
	if creator, err := uuid.Parse(createdBy); err == nil {
		batch.CreatedBy = creator
	}

	for _, result := range batchResult.Results {
		entry := PayrollEntry{
			ID:             uuid.New(),
			BatchID:        batch.ID,
			CompanyID:      companyUUID,
			EmployeeID:     uuid.MustParse(result.EmployeeID),
			EmployeeName:   result.EmployeeName,
			NationalID:     result.NationalID,
			EmploymentType: result.EmploymentType,
			Period:         result.Period,
			TotalHours:     result.TotalHours,
			Gross:          result.Gross,
			Allowance:      result.Allowance,
			Health:         result.Health,
			Pension:        result.Pension,
			Debt:           result.Debt,
			Deductions:     result.Deductions,
			Net:            result.Net,
		}
		for i, line := range result.Lines {
			entry.Lines = append(entry.Lines, PayrollLine{
				ID:              uuid.New(),
				EntryID:         entry.ID,
				Category:        line.Category,
				DisplayName:     line.DisplayName,
				Quantity:        line.Quantity,
				UnitRate:        line.UnitRate,
				SurchargePct:    line.SurchargePct,
				SurchargeAmount: line.SurchargeAmount,
				TotalUnitRate:   line.TotalUnitRate,
				Subtotal:        line.Subtotal,
				Position:        i,
			})
		}
		batch.Entries = append(batch.Entries, entry)
	}

	if err := qtx.CreateBatch(ctx, batch); err != nil {
		s.logger.Error("persist payroll batch failed", zap.Error(err))
		return BatchResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.PayrollBatchCalculatedEvent{
			EventType:     "payroll_batch_calculated",
			RequestID:     rid,
			BatchID:       batch.ID.String(),
			CompanyID:     companyID,
			Period:        period,
			EmployeeCount: batch.EmployeeCount,
			OccurredAt:    time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return BatchResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "payroll_batch",
			AggregateID:   batch.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PayrollBatchCalculatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("payroll batch outbox persist failed", zap.Error(err))
			return BatchResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return BatchResponse{}, err
	}

	s.logger.Info("payroll batch calculated",
		zap.String("request_id", rid),
		zap.String("batch_id", batch.ID.String()),
		zap.String("batch_number", batch.BatchNumber),
		zap.String("quincena", period),
		zap.Int("employees", batch.EmployeeCount),
	)

	return mapBatchToResponse(*batch, true), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filter QueryFilter,
) ([]BatchResponse, error) {
	if filter.Period != "" && !hours.ValidPeriod(filter.Period) {
		return nil, payrollerrors.ErrInvalidPeriod
	}

	batches, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]BatchResponse, len(batches))
	for i, batch := range batches {
		resp[i] = mapBatchToResponse(batch, false)
	}
	return resp, nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (BatchResponse, error) {
	batch, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return BatchResponse{}, mapRepositoryError(err)
	}
	return mapBatchToResponse(*batch, true), nil
}

func (s *service) MarkPaid(ctx context.Context, companyID, id string) (BatchResponse, error) {
	return s.transition(ctx, companyID, id, StatusPaid)
}

func (s *service) Void(ctx context.Context, companyID, id string) (BatchResponse, error) {
	return s.transition(ctx, companyID, id, StatusVoided)
}

// transition moves a batch out of DRAFT. PAID and VOIDED are terminal.
func (s *service) transition(ctx context.Context, companyID, id, status string) (BatchResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BatchResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	batch, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return BatchResponse{}, mapRepositoryError(err)
	}

	if batch.Status != StatusDraft {
		return BatchResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	if err := qtx.UpdateStatus(ctx, companyID, id, status); err != nil {
		return BatchResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return BatchResponse{}, err
	}

	batch.Status = status

	s.logger.Info("payroll batch status changed",
		zap.String("request_id", rid),
		zap.String("batch_id", id),
		zap.String("status", status),
	)

	return mapBatchToResponse(*batch, true), nil
}

func (s *service) RequestPayslip(
	ctx context.Context,
	companyID, batchID, entryID, requestedBy string,
) error {
	rid := contextutil.GetRequestID(ctx)

	if _, err := s.findEntry(ctx, companyID, batchID, entryID); err != nil {
		return err
	}

	if s.outbox == nil {
		return nil
	}

	event := events.PayslipRequestedEvent{
		EventType:   "payslip_requested",
		RequestID:   rid,
		BatchID:     batchID,
		EntryID:     entryID,
		CompanyID:   companyID,
		RequestedBy: requestedBy,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "payroll_entry",
		AggregateID:   entryID,
		EventType:     event.EventType,
		Topic:         events.PayslipRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("payslip request outbox persist failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("payslip requested",
		zap.String("request_id", rid),
		zap.String("entry_id", entryID),
	)

	return nil
}

// GeneratePayslip renders the PDF for one entry and records its path. Called
// by the kafka consumer, not by HTTP handlers.
func (s *service) GeneratePayslip(
	ctx context.Context,
	companyID, batchID, entryID string,
) (string, error) {
	entry, err := s.findEntry(ctx, companyID, batchID, entryID)
	if err != nil {
		return "", err
	}

	batch, err := s.repo.FindByIDAndCompany(ctx, companyID, batchID)
	if err != nil {
		return "", mapRepositoryError(err)
	}

	path, err := s.payslips.Write(batch.BatchNumber, *entry)
	if err != nil {
		s.logger.Error("payslip generation failed",
			zap.String("entry_id", entryID),
			zap.Error(err),
		)
		return "", err
	}

	if err := s.repo.SetEntryPayslipPath(ctx, entryID, path); err != nil {
		return "", mapRepositoryError(err)
	}

	s.logger.Info("payslip generated",
		zap.String("entry_id", entryID),
		zap.String("path", path),
	)

	return path, nil
}

func (s *service) PayslipPath(
	ctx context.Context,
	companyID, batchID, entryID string,
) (string, error) {
	entry, err := s.findEntry(ctx, companyID, batchID, entryID)
	if err != nil {
		return "", err
	}
	if entry.PayslipPath == "" {
		return "", payrollerrors.ErrPayslipNotReady
	}
	return entry.PayslipPath, nil
}

func (s *service) findEntry(ctx context.Context, companyID, batchID, entryID string) (*PayrollEntry, error) {
	entry, err := s.repo.FindEntry(ctx, companyID, batchID, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

func mapLineToResponse(line PayrollLine) LineResponse {
	unitRate, _ := line.UnitRate.Float64()
	pct, _ := line.SurchargePct.Float64()
	surcharge, _ := line.SurchargeAmount.Float64()
	totalUnit, _ := line.TotalUnitRate.Float64()
	subtotal, _ := line.Subtotal.Float64()

	return LineResponse{
		Category:        line.Category,
		DisplayName:     line.DisplayName,
		Quantity:        line.Quantity,
		UnitRate:        unitRate,
		SurchargePct:    pct,
		SurchargeAmount: surcharge,
		TotalUnitRate:   totalUnit,
		Subtotal:        subtotal,
	}
}

func mapEntryToResponse(entry PayrollEntry, withLines bool) EntryResponse {
	gross, _ := entry.Gross.Float64()
	allowance, _ := entry.Allowance.Float64()
	health, _ := entry.Health.Float64()
	pension, _ := entry.Pension.Float64()
	debt, _ := entry.Debt.Float64()
	deductions, _ := entry.Deductions.Float64()
	net, _ := entry.Net.Float64()

	resp := EntryResponse{
		ID:             entry.ID.String(),
		EmployeeID:     entry.EmployeeID.String(),
		EmployeeName:   entry.EmployeeName,
		NationalID:     entry.NationalID,
		EmploymentType: entry.EmploymentType,
		Period:         entry.Period,
		TotalHours:     entry.TotalHours,
		Gross:          gross,
		Allowance:      allowance,
		Health:         health,
		Pension:        pension,
		Debt:           debt,
		Deductions:     deductions,
		Net:            net,
		HasPayslip:     entry.PayslipPath != "",
	}
	if withLines {
		resp.Lines = make([]LineResponse, len(entry.Lines))
		for i, line := range entry.Lines {
			resp.Lines[i] = mapLineToResponse(line)
		}
	}
	return resp
}

func mapBatchToResponse(batch PayrollBatch, withEntries bool) BatchResponse {
	gross, _ := batch.Gross.Float64()
	deductions, _ := batch.Deductions.Float64()
	net, _ := batch.Net.Float64()

	resp := BatchResponse{
		ID:            batch.ID.String(),
		BatchNumber:   batch.BatchNumber,
		Period:        batch.Period,
		Status:        batch.Status,
		EmployeeCount: batch.EmployeeCount,
		TotalHours:    batch.TotalHours,
		Gross:         gross,
		Deductions:    deductions,
		Net:           net,
		CreatedAt:     batch.CreatedAt.UTC().Format(time.RFC3339),
	}
	if withEntries {
		resp.Entries = make([]EntryResponse, len(batch.Entries))
		for i, entry := range batch.Entries {
			resp.Entries[i] = mapEntryToResponse(entry, true)
		}
	}
	return resp
}
