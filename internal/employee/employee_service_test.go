package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-nomina/internal/employee"
	employeeerrors "go-nomina/internal/employee/errors"
	"go-nomina/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	withTxFn               func(tx *sql.Tx) employee.Repository
	createFn               func(ctx context.Context, empl *employee.Employee) error
	findAllByCompanyFn     func(ctx context.Context, companyID string) ([]employee.Employee, error)
	findOptionsByCompanyFn func(ctx context.Context, companyID string) ([]employee.Employee, error)
	findByIDAndCompanyFn   func(ctx context.Context, companyID string, id string) (*employee.Employee, error)
	findByIDFn             func(ctx context.Context, id string) (*employee.Employee, error)
	updateFn               func(ctx context.Context, empl *employee.Employee) error
	deleteFn               func(ctx context.Context, companyID string, id string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, empl *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindOptionsByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	if f.findOptionsByCompanyFn != nil {
		return f.findOptionsByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*employee.Employee, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, empl *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, companyID string, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

type fakeCounterRepository struct {
	getNextValueFn func(ctx context.Context, companyID string, counterType string) (int64, error)
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	if f.getNextValueFn != nil {
		return f.getNextValueFn(ctx, companyID, counterType)
	}
	return 1, nil
}

type fakeOutboxRepository struct {
	withTxFn func(tx *sql.Tx) kafka.OutboxRepository
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func boolPtr(b bool) *bool { return &b }

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success assigns generated employee number and defaults", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectCommit()

		var saved employee.Employee
		repo := &fakeEmployeeRepository{}
		repo.withTxFn = func(tx *sql.Tx) employee.Repository { return repo }
		repo.createFn = func(ctx context.Context, empl *employee.Employee) error {
			saved = *empl
			return nil
		}

		counterRepo := &fakeCounterRepository{
			getNextValueFn: func(ctx context.Context, cid string, counterType string) (int64, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, "employee_number", counterType)
				return 123, nil
			},
		}

		var published kafka.OutboxEvent
		outbox := &fakeOutboxRepository{
			createFn: func(ctx context.Context, event kafka.OutboxEvent) error {
				published = event
				return nil
			},
		}

		svc := employee.NewServiceWithOutbox(db, repo, counterRepo, outbox, nil)

		resp, err := svc.Create(ctx, companyID, employee.CreateEmployeeRequest{
			FullName:       "Maria Lopez",
			NationalID:     "1020304050",
			EmploymentType: employee.TypePermanent,
			BaseSalary:     1423500,
		})

		assert.NoError(t, err)
		assert.Equal(t, "EMP-000123", resp.EmployeeNumber)
		assert.Equal(t, "EMP-000123", saved.EmployeeNumber)
		assert.True(t, saved.DeductHealth)
		assert.True(t, saved.DeductPension)
		assert.True(t, saved.DeductTransport)
		assert.Equal(t, "employee_created", published.EventType)
		assert.Equal(t, saved.ID.String(), published.AggregateID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("explicit deduction flags are kept", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectCommit()

		var saved employee.Employee
		repo := &fakeEmployeeRepository{}
		repo.createFn = func(ctx context.Context, empl *employee.Employee) error {
			saved = *empl
			return nil
		}

		svc := employee.NewServiceWithOutbox(db, repo, &fakeCounterRepository{}, &fakeOutboxRepository{}, nil)

		_, err := svc.Create(ctx, companyID, employee.CreateEmployeeRequest{
			FullName:        "Pedro Marin",
			NationalID:      "900400100",
			EmploymentType:  employee.TypeTemporary,
			BaseSalary:      1600000,
			DeductHealth:    boolPtr(false),
			DeductPension:   boolPtr(false),
			DeductTransport: boolPtr(false),
		})

		assert.NoError(t, err)
		assert.False(t, saved.DeductHealth)
		assert.False(t, saved.DeductPension)
		assert.False(t, saved.DeductTransport)
	})

	t.Run("invalid employment type rejected", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		svc := employee.NewServiceWithOutbox(db, &fakeEmployeeRepository{}, &fakeCounterRepository{}, &fakeOutboxRepository{}, nil)

		_, err := svc.Create(ctx, companyID, employee.CreateEmployeeRequest{
			FullName:       "X",
			NationalID:     "123456",
			EmploymentType: "FREELANCE",
			BaseSalary:     1000000,
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmploymentType)
	})

	t.Run("invalid company id rejected", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		svc := employee.NewServiceWithOutbox(db, &fakeEmployeeRepository{}, &fakeCounterRepository{}, &fakeOutboxRepository{}, nil)

		_, err := svc.Create(ctx, "not-a-uuid", employee.CreateEmployeeRequest{
			FullName:       "X",
			NationalID:     "123456",
			EmploymentType: employee.TypePermanent,
			BaseSalary:     1000000,
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidCompanyID)
	})

	t.Run("duplicate cedula maps to conflict error", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectRollback()

		repo := &fakeEmployeeRepository{
			createFn: func(ctx context.Context, empl *employee.Employee) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_cedula"}
			},
		}

		svc := employee.NewServiceWithOutbox(db, repo, &fakeCounterRepository{}, &fakeOutboxRepository{}, nil)

		_, err := svc.Create(ctx, companyID, employee.CreateEmployeeRequest{
			FullName:       "Maria Lopez",
			NationalID:     "1020304050",
			EmploymentType: employee.TypePermanent,
			BaseSalary:     1423500,
		})

		assert.ErrorIs(t, err, employeeerrors.ErrCedulaAlreadyExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("counter failure rolls back", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectRollback()

		counterRepo := &fakeCounterRepository{
			getNextValueFn: func(ctx context.Context, cid string, counterType string) (int64, error) {
				return 0, errors.New("sequence unavailable")
			},
		}

		svc := employee.NewServiceWithOutbox(db, &fakeEmployeeRepository{}, counterRepo, &fakeOutboxRepository{}, nil)

		_, err := svc.Create(ctx, companyID, employee.CreateEmployeeRequest{
			FullName:       "Maria Lopez",
			NationalID:     "1020304050",
			EmploymentType: employee.TypePermanent,
			BaseSalary:     1423500,
		})

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("not found mapped to domain error", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeEmployeeRepository{
			findByIDAndCompanyFn: func(ctx context.Context, cid string, id string) (*employee.Employee, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := employee.NewServiceWithOutbox(db, repo, &fakeCounterRepository{}, &fakeOutboxRepository{}, nil)

		_, err := svc.GetByID(ctx, companyID, uuid.New().String())
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("found returns mapped response", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		id := uuid.New()
		repo := &fakeEmployeeRepository{
			findByIDAndCompanyFn: func(ctx context.Context, cid string, eid string) (*employee.Employee, error) {
				return &employee.Employee{
					ID:             id,
					CompanyID:      uuid.MustParse(companyID),
					EmployeeNumber: "EMP-000007",
					FullName:       "Ana Ruiz",
					NationalID:     "52300100",
					EmploymentType: employee.TypePermanent,
				}, nil
			},
		}

		svc := employee.NewServiceWithOutbox(db, repo, &fakeCounterRepository{}, &fakeOutboxRepository{}, nil)

		resp, err := svc.GetByID(ctx, companyID, id.String())
		assert.NoError(t, err)
		assert.Equal(t, "Ana Ruiz", resp.FullName)
		assert.Equal(t, "EMP-000007", resp.EmployeeNumber)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	id := uuid.New()

	t.Run("success keeps unset flags", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectCommit()

		var updated employee.Employee
		repo := &fakeEmployeeRepository{
			findByIDAndCompanyFn: func(ctx context.Context, cid string, eid string) (*employee.Employee, error) {
				return &employee.Employee{
					ID:              id,
					CompanyID:       uuid.MustParse(companyID),
					FullName:        "Ana Ruiz",
					EmploymentType:  employee.TypePermanent,
					DeductHealth:    false,
					DeductPension:   true,
					DeductTransport: true,
				}, nil
			},
			updateFn: func(ctx context.Context, empl *employee.Employee) error {
				updated = *empl
				return nil
			},
		}

		svc := employee.NewServiceWithOutbox(db, repo, &fakeCounterRepository{}, &fakeOutboxRepository{}, nil)

		resp, err := svc.Update(ctx, companyID, id.String(), employee.UpdateEmployeeRequest{
			FullName:       "Ana Ruiz Restrepo",
			EmploymentType: employee.TypePermanent,
			BaseSalary:     2000000,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Ana Ruiz Restrepo", resp.FullName)
		assert.False(t, updated.DeductHealth)
		assert.True(t, updated.DeductPension)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing employee rolls back", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectRollback()

		repo := &fakeEmployeeRepository{
			findByIDAndCompanyFn: func(ctx context.Context, cid string, eid string) (*employee.Employee, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := employee.NewServiceWithOutbox(db, repo, &fakeCounterRepository{}, &fakeOutboxRepository{}, nil)

		_, err := svc.Update(ctx, companyID, id.String(), employee.UpdateEmployeeRequest{
			FullName:       "X",
			EmploymentType: employee.TypePermanent,
			BaseSalary:     1000000,
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetOptions_Singleflight(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	db, _, _ := sqlmock.New()
	defer db.Close()

	calls := 0
	repo := &fakeEmployeeRepository{
		findOptionsByCompanyFn: func(ctx context.Context, cid string) ([]employee.Employee, error) {
			calls++
			return []employee.Employee{
				{ID: uuid.New(), CompanyID: uuid.MustParse(companyID), FullName: "Ana Ruiz"},
			}, nil
		},
	}

	svc := employee.NewServiceWithOutbox(db, repo, &fakeCounterRepository{}, &fakeOutboxRepository{}, nil)

	resp, err := svc.GetOptions(ctx, companyID)
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, 1, calls)
}
