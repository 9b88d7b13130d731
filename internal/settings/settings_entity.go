package settings

import (
	"time"

	"go-nomina/internal/hours"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Statutory defaults for 2025. Applied whenever a company has no stored
// configuration yet; the ordinary hourly value is the monthly minimum spread
// over 240 working hours.
var (
	DefaultMinimumSalary      = decimal.NewFromInt(1423500)
	DefaultTransportAllowance = decimal.NewFromInt(100000)
	DefaultHealthPct          = decimal.NewFromFloat(4.0)
	DefaultPensionPct         = decimal.NewFromFloat(4.0)
	DefaultHourlyRate         = DefaultMinimumSalary.DivRound(decimal.NewFromInt(240), 2)
)

// CompanySettings is the single per-tenant payroll configuration row.
type CompanySettings struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_settings_company"`

	CompanyName string `gorm:"column:nombre_empresa;type:varchar(255)"`
	NIT         string `gorm:"column:nit;type:varchar(30)"`
	Address     string `gorm:"column:direccion;type:varchar(255)"`

	MinimumSalary      decimal.Decimal `gorm:"column:salario_minimo;type:numeric(14,2);not null"`
	TransportAllowance decimal.Decimal `gorm:"column:auxilio_transporte;type:numeric(14,2);not null"`
	HealthPct          decimal.Decimal `gorm:"column:porcentaje_salud;type:numeric(5,2);not null"`
	PensionPct         decimal.Decimal `gorm:"column:porcentaje_pension;type:numeric(5,2);not null"`
	HourlyRate         decimal.Decimal `gorm:"column:valor_hora_ordinaria;type:numeric(14,2);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CompanySettings) TableName() string {
	return "company_settings"
}

// HourTypeRate is one row of the per-tenant surcharge table.
type HourTypeRate struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_hour_type_rate"`
	Category  string    `gorm:"column:tipo;type:varchar(60);not null;uniqueIndex:uq_hour_type_rate"`

	DisplayName      string          `gorm:"column:nombre;type:varchar(120);not null"`
	SurchargePct     decimal.Decimal `gorm:"column:porcentaje;type:numeric(6,2);not null"`
	AppliesPermanent bool            `gorm:"column:aplica_fijo;not null;default:true"`
	AppliesTemporary bool            `gorm:"column:aplica_temporal;not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (HourTypeRate) TableName() string {
	return "hour_type_rates"
}

type legalRate struct {
	displayName string
	pct         float64
}

// Legal 2025 surcharge table, keyed by category in the fixed enumeration
// order used everywhere else.
var legalRates = map[string]legalRate{
	hours.CategoryOrdinary:             {"Horas ordinarias", 0},
	hours.CategoryNight:                {"Recargo nocturno", 35},
	hours.CategorySundayDay:            {"Recargo diurno dominical", 75},
	hours.CategorySundayNight:          {"Recargo nocturno dominical", 110},
	hours.CategoryOvertimeDay:          {"Hora extra diurna", 25},
	hours.CategoryOvertimeNight:        {"Hora extra nocturna", 75},
	hours.CategoryHolidayDay:           {"Hora diurna dominical o festivo", 80},
	hours.CategoryHolidayDayOvertime:   {"Hora extra diurna dominical o festivo", 105},
	hours.CategoryHolidayNight:         {"Hora nocturna dominical o festivo", 110},
	hours.CategoryHolidayNightOvertime: {"Hora extra nocturna dominical o festivo", 185},
}

// DefaultHourTypeRates returns the statutory table for a company that has
// never customized its rates.
func DefaultHourTypeRates(companyID uuid.UUID) []HourTypeRate {
	rates := make([]HourTypeRate, 0, len(legalRates))
	for _, item := range (hours.HourQuantities{}).Items() {
		legal := legalRates[item.Category]
		rates = append(rates, HourTypeRate{
			ID:               uuid.New(),
			CompanyID:        companyID,
			Category:         item.Category,
			DisplayName:      legal.displayName,
			SurchargePct:     decimal.NewFromFloat(legal.pct),
			AppliesPermanent: true,
			AppliesTemporary: true,
		})
	}
	return rates
}
