package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	employeeerrors "go-nomina/internal/employee/errors"
	"go-nomina/internal/events"
	"go-nomina/internal/messaging/kafka"
	"go-nomina/internal/shared/contextutil"
	"go-nomina/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const EmployeeOptionsKeyPrefix = "employees:options:"

func GetEmployeeOptionsKey(companyID string) string {
	return EmployeeOptionsKeyPrefix + companyID
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("cedula", req.NationalID),
		zap.String("tipo", req.EmploymentType),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidCompanyID
	}

	if !IsValidEmploymentType(req.EmploymentType) {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmploymentType
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	nextVal, err := s.counter.GetNextValue(ctx, companyID, counter.TypeEmployeeNumber)
	if err != nil {
		s.logger.Error("create employee generate number failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:              uuid.New(),
		CompanyID:       companyUUID,
		EmployeeNumber:  fmt.Sprintf("EMP-%06d", nextVal),
		FullName:        req.FullName,
		NationalID:      req.NationalID,
		EmploymentType:  req.EmploymentType,
		BaseSalary:      decimal.NewFromFloat(req.BaseSalary),
		DeductHealth:    boolOrDefault(req.DeductHealth, true),
		DeductPension:   boolOrDefault(req.DeductPension, true),
		DeductTransport: boolOrDefault(req.DeductTransport, true),
		ConsumerDebt:    decimal.NewFromFloat(req.ConsumerDebt),
		Comment:         req.Comment,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:  "employee_created",
			RequestID:  rid,
			EmployeeID: empl.ID.String(),
			CompanyID:  companyID,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx, companyID)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_number", empl.EmployeeNumber),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested", zap.String("company_id", companyID))
	employees, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(employees), nil
}

func (s *service) GetOptions(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
	cacheKey := GetEmployeeOptionsKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Singleflight collapses concurrent cache misses into one query
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		employees, err := s.repo.FindOptionsByCompany(ctx, companyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(employees)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (EmployeeResponse, error) {
	empl, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", id),
	)

	if !IsValidEmploymentType(req.EmploymentType) {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmploymentType
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Error("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.FullName = req.FullName
	empl.EmploymentType = req.EmploymentType
	empl.BaseSalary = decimal.NewFromFloat(req.BaseSalary)
	empl.DeductHealth = boolOrDefault(req.DeductHealth, empl.DeductHealth)
	empl.DeductPension = boolOrDefault(req.DeductPension, empl.DeductPension)
	empl.DeductTransport = boolOrDefault(req.DeductTransport, empl.DeductTransport)
	empl.ConsumerDebt = decimal.NewFromFloat(req.ConsumerDebt)
	empl.Comment = req.Comment

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx, companyID)

	s.logger.Info("update employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	return mapToResponse(*empl), nil
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

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptionsCache(ctx, companyID)

	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetEmployeeOptionsKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	salary, _ := empl.BaseSalary.Float64()
	debt, _ := empl.ConsumerDebt.Float64()

	return EmployeeResponse{
		ID:              empl.ID.String(),
		CompanyID:       empl.CompanyID.String(),
		EmployeeNumber:  empl.EmployeeNumber,
		FullName:        empl.FullName,
		NationalID:      empl.NationalID,
		EmploymentType:  empl.EmploymentType,
		BaseSalary:      salary,
		DeductHealth:    empl.DeductHealth,
		DeductPension:   empl.DeductPension,
		DeductTransport: empl.DeductTransport,
		ConsumerDebt:    debt,
		Comment:         empl.Comment,
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i, empl := range employees {
		resp[i] = mapToResponse(empl)
	}
	return resp
}
