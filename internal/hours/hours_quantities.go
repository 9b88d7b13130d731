package hours

import "fmt"

// Hour-type category keys. The keys double as configuration lookup keys in
// the rate table and as line-item names on payroll results, so they stay in
// the legal Spanish wording used on Colombian payslips.
const (
	CategoryOrdinary             = "horas_ordinarias"
	CategoryNight                = "recargo_nocturno"
	CategorySundayDay            = "recargo_diurno_dominical"
	CategorySundayNight          = "recargo_nocturno_dominical"
	CategoryOvertimeDay          = "hora_extra_diurna"
	CategoryOvertimeNight        = "hora_extra_nocturna"
	CategoryHolidayDay           = "hora_diurna_dominical_o_festivo"
	CategoryHolidayDayOvertime   = "hora_extra_diurna_dominical_o_festivo"
	CategoryHolidayNight         = "hora_nocturna_dominical_o_festivo"
	CategoryHolidayNightOvertime = "hora_extra_nocturna_dominical_o_festivo"
)

// Daily caps per category. Ordinary hours run to a 12h shift, non-overtime
// surcharge categories to 8h, overtime categories to the legal 4h, and a
// single calendar day can never hold more than 24h across all categories.
const (
	CapOrdinary  = 12.0
	CapSurcharge = 8.0
	CapOvertime  = 4.0
	CapDaily     = 24.0
)

// HourQuantities holds one record's hour counts per category. Immutable once
// validated; the calculator treats it as read-only input.
type HourQuantities struct {
	Ordinary             float64 `json:"horas_ordinarias"`
	Night                float64 `json:"recargo_nocturno"`
	SundayDay            float64 `json:"recargo_diurno_dominical"`
	SundayNight          float64 `json:"recargo_nocturno_dominical"`
	OvertimeDay          float64 `json:"hora_extra_diurna"`
	OvertimeNight        float64 `json:"hora_extra_nocturna"`
	HolidayDay           float64 `json:"hora_diurna_dominical_o_festivo"`
	HolidayDayOvertime   float64 `json:"hora_extra_diurna_dominical_o_festivo"`
	HolidayNight         float64 `json:"hora_nocturna_dominical_o_festivo"`
	HolidayNightOvertime float64 `json:"hora_extra_nocturna_dominical_o_festivo"`
}

// CategoryQuantity pairs a category key with its recorded hours.
type CategoryQuantity struct {
	Category string
	Value    float64
	cap      float64
}

// Items returns the ten categories in their fixed enumeration order. The
// order is part of the contract: validation reports the first violated
// category and payroll line items are emitted in this order.
func (q HourQuantities) Items() []CategoryQuantity {
	return []CategoryQuantity{
		{CategoryOrdinary, q.Ordinary, CapOrdinary},
		{CategoryNight, q.Night, CapSurcharge},
		{CategorySundayDay, q.SundayDay, CapSurcharge},
		{CategorySundayNight, q.SundayNight, CapSurcharge},
		{CategoryOvertimeDay, q.OvertimeDay, CapOvertime},
		{CategoryOvertimeNight, q.OvertimeNight, CapOvertime},
		{CategoryHolidayDay, q.HolidayDay, CapSurcharge},
		{CategoryHolidayDayOvertime, q.HolidayDayOvertime, CapOvertime},
		{CategoryHolidayNight, q.HolidayNight, CapSurcharge},
		{CategoryHolidayNightOvertime, q.HolidayNightOvertime, CapOvertime},
	}
}

func (q HourQuantities) Total() float64 {
	total := 0.0
	for _, item := range q.Items() {
		total += item.Value
	}
	return total
}

// Add merges another record's quantities, used when aggregating a period's
// daily records into one set for payroll.
func (q HourQuantities) Add(other HourQuantities) HourQuantities {
	return HourQuantities{
		Ordinary:             q.Ordinary + other.Ordinary,
		Night:                q.Night + other.Night,
		SundayDay:            q.SundayDay + other.SundayDay,
		SundayNight:          q.SundayNight + other.SundayNight,
		OvertimeDay:          q.OvertimeDay + other.OvertimeDay,
		OvertimeNight:        q.OvertimeNight + other.OvertimeNight,
		HolidayDay:           q.HolidayDay + other.HolidayDay,
		HolidayDayOvertime:   q.HolidayDayOvertime + other.HolidayDayOvertime,
		HolidayNight:         q.HolidayNight + other.HolidayNight,
		HolidayNightOvertime: q.HolidayNightOvertime + other.HolidayNightOvertime,
	}
}

// NegativeQuantityError reports an hour count below zero.
type NegativeQuantityError struct {
	Category string
	Value    float64
}

func (e *NegativeQuantityError) Error() string {
	return fmt.Sprintf("hours for %q cannot be negative (got %g)", e.Category, e.Value)
}

// CategoryCapExceededError reports a single category over its daily cap.
type CategoryCapExceededError struct {
	Category string
	Value    float64
	Cap      float64
}

func (e *CategoryCapExceededError) Error() string {
	return fmt.Sprintf("hours for %q exceed the daily cap of %g (got %g)", e.Category, e.Cap, e.Value)
}

// DailyCapExceededError reports a record whose categories sum past 24h.
type DailyCapExceededError struct {
	Total float64
}

func (e *DailyCapExceededError) Error() string {
	return fmt.Sprintf("total hours exceed the 24h daily cap (got %g)", e.Total)
}

// Validate applies the legal bounds in order: no negative quantities, then
// per-category caps, then the 24h aggregate cap. The first violation wins.
// Pure function, safe for concurrent use.
func (q HourQuantities) Validate() error {
	items := q.Items()

	for _, item := range items {
		if item.Value < 0 {
			return &NegativeQuantityError{Category: item.Category, Value: item.Value}
		}
	}

	for _, item := range items {
		if item.Value > item.cap {
			return &CategoryCapExceededError{Category: item.Category, Value: item.Value, Cap: item.cap}
		}
	}

	if total := q.Total(); total > CapDaily {
		return &DailyCapExceededError{Total: total}
	}

	return nil
}
