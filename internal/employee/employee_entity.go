package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Employment types recognized by the system. Statutory deductions and the
// transport allowance only ever apply to FIJO employees; TEMPORAL employees
// never receive them, and CONTRATISTA is accepted but handled like FIJO.
const (
	TypePermanent  = "FIJO"
	TypeTemporary  = "TEMPORAL"
	TypeContractor = "CONTRATISTA"
)

func IsValidEmploymentType(t string) bool {
	switch t {
	case TypePermanent, TypeTemporary, TypeContractor:
		return true
	}
	return false
}

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_employee_number"`
	FullName       string    `gorm:"column:nombre;type:varchar(255);not null"`
	NationalID     string    `gorm:"column:cedula;type:varchar(20);not null;uniqueIndex:uq_employee_cedula"`
	EmploymentType string    `gorm:"column:tipo;type:varchar(20);not null"`

	BaseSalary decimal.Decimal `gorm:"column:salario;type:numeric(14,2);not null"`

	// Per-employee deduction switches. Stored as entered; the temporary
	// employment override is applied at calculation time, not here.
	DeductHealth    bool            `gorm:"column:deducir_salud;not null;default:true"`
	DeductPension   bool            `gorm:"column:deducir_pension;not null;default:true"`
	DeductTransport bool            `gorm:"column:deducir_auxilio_transporte;not null;default:true"`
	ConsumerDebt    decimal.Decimal `gorm:"column:deuda_consumos;type:numeric(14,2);not null;default:0"`

	Comment   string `gorm:"column:comentario;type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
