package payroll

import (
	"context"
	"database/sql"

	"go-nomina/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateBatch(ctx context.Context, batch *PayrollBatch) error
	FindAllByCompany(ctx context.Context, companyID string, filter QueryFilter) ([]PayrollBatch, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*PayrollBatch, error)
	FindEntry(ctx context.Context, companyID, batchID, entryID string) (*PayrollEntry, error)
	UpdateStatus(ctx context.Context, companyID, id, status string) error
	SetEntryPayslipPath(ctx context.Context, entryID, path string) error
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

// CreateBatch persists the batch with its entries and lines in one insert
// chain via gorm associations.
func (r *repository) CreateBatch(ctx context.Context, batch *PayrollBatch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter QueryFilter) ([]PayrollBatch, error) {
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if filter.Period != "" {
		q = q.Where("quincena = ?", filter.Period)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.EmployeeID != "" {
		q = q.Where("id IN (?)",
			r.db.Model(&PayrollEntry{}).
				Select("batch_id").
				Where("employee_id = ?", filter.EmployeeID),
		)
	}

	var batches []PayrollBatch
	err := q.Order("created_at DESC").Find(&batches).Error
	return batches, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*PayrollBatch, error) {
	var batch PayrollBatch
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("nombre ASC")
		}).
		Preload("Entries.Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&batch, "id = ?", id).Error
	return &batch, err
}

func (r *repository) FindEntry(ctx context.Context, companyID, batchID, entryID string) (*PayrollEntry, error) {
	var entry PayrollEntry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&entry, "id = ? AND batch_id = ?", entryID, batchID).Error
	return &entry, err
}

func (r *repository) UpdateStatus(ctx context.Context, companyID, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&PayrollBatch{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repository) SetEntryPayslipPath(ctx context.Context, entryID, path string) error {
	return r.db.WithContext(ctx).
		Model(&PayrollEntry{}).
		Where("id = ?", entryID).
		Update("payslip_path", path).Error
}
