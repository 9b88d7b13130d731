package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Batch lifecycle. A batch is persisted as DRAFT and can move exactly once,
// to PAID or VOIDED.
const (
	StatusDraft  = "DRAFT"
	StatusPaid   = "PAID"
	StatusVoided = "VOIDED"
)

// PayrollBatch is one calculation run: one period, one configuration
// snapshot, one or more employees.
type PayrollBatch struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	BatchNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_payroll_batch_number"`
	Period      string    `gorm:"column:quincena;type:varchar(7);not null;index"`
	Status      string    `gorm:"type:varchar(10);not null;default:'DRAFT'"`

	EmployeeCount int             `gorm:"not null"`
	TotalHours    float64         `gorm:"column:total_horas;not null;default:0"`
	Gross         decimal.Decimal `gorm:"column:total_bruto;type:numeric(16,2);not null"`
	Deductions    decimal.Decimal `gorm:"column:total_deducciones;type:numeric(16,2);not null"`
	Net           decimal.Decimal `gorm:"column:total_neto;type:numeric(16,2);not null"`

	Entries []PayrollEntry `gorm:"foreignKey:BatchID"`

	CreatedBy uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (PayrollBatch) TableName() string {
	return "payroll_batches"
}

// PayrollEntry is one employee's result inside a batch, denormalized with the
// identity fields as they were at calculation time.
type PayrollEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BatchID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	EmployeeName   string `gorm:"column:nombre;type:varchar(255);not null"`
	NationalID     string `gorm:"column:cedula;type:varchar(20);not null"`
	EmploymentType string `gorm:"column:tipo;type:varchar(20);not null"`
	Period         string `gorm:"column:quincena;type:varchar(7);not null"`

	TotalHours float64         `gorm:"column:total_horas;not null;default:0"`
	Gross      decimal.Decimal `gorm:"column:total_bruto;type:numeric(16,2);not null"`
	Allowance  decimal.Decimal `gorm:"column:auxilio_transporte;type:numeric(14,2);not null"`
	Health     decimal.Decimal `gorm:"column:deduccion_salud;type:numeric(14,2);not null"`
	Pension    decimal.Decimal `gorm:"column:deduccion_pension;type:numeric(14,2);not null"`
	Debt       decimal.Decimal `gorm:"column:deuda_consumos;type:numeric(14,2);not null"`
	Deductions decimal.Decimal `gorm:"column:total_deducciones;type:numeric(16,2);not null"`
	Net        decimal.Decimal `gorm:"column:neto_a_pagar;type:numeric(16,2);not null"`

	PayslipPath string `gorm:"type:varchar(500)"`

	Lines []PayrollLine `gorm:"foreignKey:EntryID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PayrollEntry) TableName() string {
	return "payroll_entries"
}

// PayrollLine is one hour-type row of an entry's itemized detail.
type PayrollLine struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EntryID uuid.UUID `gorm:"type:uuid;not null;index"`

	Category        string          `gorm:"column:tipo;type:varchar(60);not null"`
	DisplayName     string          `gorm:"column:nombre;type:varchar(120);not null"`
	Quantity        float64         `gorm:"column:cantidad;not null"`
	UnitRate        decimal.Decimal `gorm:"column:valor_hora;type:numeric(14,2);not null"`
	SurchargePct    decimal.Decimal `gorm:"column:porcentaje;type:numeric(6,2);not null"`
	SurchargeAmount decimal.Decimal `gorm:"column:valor_recargo;type:numeric(14,2);not null"`
	TotalUnitRate   decimal.Decimal `gorm:"column:valor_hora_total;type:numeric(14,2);not null"`
	Subtotal        decimal.Decimal `gorm:"column:subtotal;type:numeric(16,2);not null"`

	Position int `gorm:"not null"`

	CreatedAt time.Time
}

func (PayrollLine) TableName() string {
	return "payroll_lines"
}
