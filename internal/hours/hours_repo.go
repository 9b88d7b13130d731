package hours

import (
	"context"
	"database/sql"

	"go-nomina/internal/tenant"

	"gorm.io/gorm"
)

// QueryFilter narrows listing to one employee and/or one quincena.
type QueryFilter struct {
	EmployeeID string
	Period     string
}

//go:generate mockgen -source=hours_repo.go -destination=mock/hours_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, record *HourRecord) error
	FindAllByCompany(ctx context.Context, companyID string, filter QueryFilter) ([]HourRecord, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*HourRecord, error)
	FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID, period string) ([]HourRecord, error)
	EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error)
	Update(ctx context.Context, record *HourRecord) error
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

func (r *repository) Create(ctx context.Context, record *HourRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter QueryFilter) ([]HourRecord, error) {
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Period != "" {
		q = q.Where("quincena = ?", filter.Period)
	}

	var records []HourRecord
	err := q.Order("fecha ASC").Find(&records).Error
	return records, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*HourRecord, error) {
	var record HourRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&record, "id = ?", id).Error
	return &record, err
}

func (r *repository) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID, period string) ([]HourRecord, error) {
	var records []HourRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND quincena = ?", employeeID, period).
		Order("fecha ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ? AND company_id = ? AND deleted_at IS NULL", employeeID, companyID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, record *HourRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&HourRecord{}, "id = ?", id).Error
}
