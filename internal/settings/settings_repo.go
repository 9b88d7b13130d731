package settings

import (
	"context"
	"database/sql"

	"go-nomina/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=settings_repo.go -destination=mock/settings_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	GetCompanySettings(ctx context.Context, companyID string) (*CompanySettings, error)
	UpsertCompanySettings(ctx context.Context, cfg *CompanySettings) error
	ListHourTypeRates(ctx context.Context, companyID string) ([]HourTypeRate, error)
	ReplaceHourTypeRates(ctx context.Context, companyID string, rates []HourTypeRate) error
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

func (r *repository) GetCompanySettings(ctx context.Context, companyID string) (*CompanySettings, error) {
	var cfg CompanySettings
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&cfg).Error
	return &cfg, err
}

func (r *repository) UpsertCompanySettings(ctx context.Context, cfg *CompanySettings) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "company_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"nombre_empresa", "nit", "direccion",
				"salario_minimo", "auxilio_transporte",
				"porcentaje_salud", "porcentaje_pension",
				"valor_hora_ordinaria", "updated_at",
			}),
		}).
		Create(cfg).Error
}

func (r *repository) ListHourTypeRates(ctx context.Context, companyID string) ([]HourTypeRate, error) {
	var rates []HourTypeRate
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("tipo ASC").
		Find(&rates).Error
	return rates, err
}

// ReplaceHourTypeRates swaps the whole surcharge table in one statement pair,
// expected to run inside the service's transaction.
func (r *repository) ReplaceHourTypeRates(ctx context.Context, companyID string, rates []HourTypeRate) error {
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&HourTypeRate{}).Error; err != nil {
		return err
	}
	if len(rates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rates).Error
}
