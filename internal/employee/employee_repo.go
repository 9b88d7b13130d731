package employee

import (
	"context"
	"database/sql"

	"go-nomina/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, companyID string, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("nombre ASC").
		Find(&employees).Error
	return employees, err
}

// FindOptionsByCompany returns the slim projection used by dropdowns and the
// batch-calculation employee picker.
func (r *repository) FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Select("id", "company_id", "employee_number", "nombre", "cedula", "tipo").
		Scopes(tenant.Scope(companyID)).
		Order("nombre ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Employee{}, "id = ?", id).Error
}
