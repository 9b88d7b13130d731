package hours

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// HourRecord is one employee's worked hours for one calendar day, broken out
// by hour-type category. Records belonging to the same quincena are summed
// when payroll runs.
type HourRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_hour_record_employee_fecha"`
	Date       time.Time `gorm:"column:fecha;type:date;not null;uniqueIndex:uq_hour_record_employee_fecha"`
	Period     string    `gorm:"column:quincena;type:varchar(7);not null;index"`

	Ordinary             float64 `gorm:"column:horas_ordinarias;not null;default:0"`
	Night                float64 `gorm:"column:recargo_nocturno;not null;default:0"`
	SundayDay            float64 `gorm:"column:recargo_diurno_dominical;not null;default:0"`
	SundayNight          float64 `gorm:"column:recargo_nocturno_dominical;not null;default:0"`
	OvertimeDay          float64 `gorm:"column:hora_extra_diurna;not null;default:0"`
	OvertimeNight        float64 `gorm:"column:hora_extra_nocturna;not null;default:0"`
	HolidayDay           float64 `gorm:"column:hora_diurna_dominical_o_festivo;not null;default:0"`
	HolidayDayOvertime   float64 `gorm:"column:hora_extra_diurna_dominical_o_festivo;not null;default:0"`
	HolidayNight         float64 `gorm:"column:hora_nocturna_dominical_o_festivo;not null;default:0"`
	HolidayNightOvertime float64 `gorm:"column:hora_extra_nocturna_dominical_o_festivo;not null;default:0"`

	DebtReason string          `gorm:"column:motivo_deuda;type:varchar(255)"`
	DebtAmount decimal.Decimal `gorm:"column:valor_deuda;type:numeric(14,2);not null;default:0"`
	Notes      string          `gorm:"column:notas;type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (HourRecord) TableName() string {
	return "hour_records"
}

// Quantities extracts the category counts for validation and aggregation.
func (r HourRecord) Quantities() HourQuantities {
	return HourQuantities{
		Ordinary:             r.Ordinary,
		Night:                r.Night,
		SundayDay:            r.SundayDay,
		SundayNight:          r.SundayNight,
		OvertimeDay:          r.OvertimeDay,
		OvertimeNight:        r.OvertimeNight,
		HolidayDay:           r.HolidayDay,
		HolidayDayOvertime:   r.HolidayDayOvertime,
		HolidayNight:         r.HolidayNight,
		HolidayNightOvertime: r.HolidayNightOvertime,
	}
}

func (r *HourRecord) setQuantities(q HourQuantities) {
	r.Ordinary = q.Ordinary
	r.Night = q.Night
	r.SundayDay = q.SundayDay
	r.SundayNight = q.SundayNight
	r.OvertimeDay = q.OvertimeDay
	r.OvertimeNight = q.OvertimeNight
	r.HolidayDay = q.HolidayDay
	r.HolidayDayOvertime = q.HolidayDayOvertime
	r.HolidayNight = q.HolidayNight
	r.HolidayNightOvertime = q.HolidayNightOvertime
}
