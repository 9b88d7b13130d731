package hours

type CreateHourRecordRequest struct {
	EmployeeID string         `json:"employee_id" binding:"required,uuid"`
	Date       string         `json:"fecha" binding:"required,datetime=2006-01-02"`
	Period     string         `json:"quincena" binding:"required"`
	Quantities HourQuantities `json:"horas"`
	DebtReason string         `json:"motivo_deuda" binding:"max=255"`
	DebtAmount float64        `json:"valor_deuda" binding:"gte=0"`
	Notes      string         `json:"notas"`
}

type UpdateHourRecordRequest struct {
	Quantities HourQuantities `json:"horas"`
	DebtReason string         `json:"motivo_deuda" binding:"max=255"`
	DebtAmount float64        `json:"valor_deuda" binding:"gte=0"`
	Notes      string         `json:"notas"`
}

type HourRecordResponse struct {
	ID         string         `json:"id"`
	EmployeeID string         `json:"employee_id"`
	Date       string         `json:"fecha"`
	Period     string         `json:"quincena"`
	Quantities HourQuantities `json:"horas"`
	TotalHours float64        `json:"total_horas"`
	DebtReason string         `json:"motivo_deuda,omitempty"`
	DebtAmount float64        `json:"valor_deuda"`
	Notes      string         `json:"notas,omitempty"`
}

// PeriodTotalsResponse is the aggregated view payroll consumes: all of an
// employee's records in one quincena summed per category.
type PeriodTotalsResponse struct {
	EmployeeID string         `json:"employee_id"`
	Period     string         `json:"quincena"`
	Quantities HourQuantities `json:"horas"`
	TotalHours float64        `json:"total_horas"`
	Records    int            `json:"registros"`
}
