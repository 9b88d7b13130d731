package payroll

type CalculateRequest struct {
	Period string `json:"quincena" binding:"required"`
}

type BatchCalculateRequest struct {
	Period string `json:"quincena" binding:"required"`
	// Empty means every employee of the company.
	EmployeeIDs []string `json:"employee_ids" binding:"omitempty,dive,uuid"`
}

type LineResponse struct {
	Category        string  `json:"tipo"`
	DisplayName     string  `json:"nombre"`
	Quantity        float64 `json:"cantidad"`
	UnitRate        float64 `json:"valor_hora"`
	SurchargePct    float64 `json:"porcentaje"`
	SurchargeAmount float64 `json:"valor_recargo"`
	TotalUnitRate   float64 `json:"valor_hora_total"`
	Subtotal        float64 `json:"subtotal"`
}

type EntryResponse struct {
	ID             string         `json:"id"`
	EmployeeID     string         `json:"employee_id"`
	EmployeeName   string         `json:"nombre"`
	NationalID     string         `json:"cedula"`
	EmploymentType string         `json:"tipo"`
	Period         string         `json:"quincena"`
	Lines          []LineResponse `json:"detalle,omitempty"`
	TotalHours     float64        `json:"total_horas"`
	Gross          float64        `json:"total_bruto"`
	Allowance      float64        `json:"auxilio_transporte"`
	Health         float64        `json:"deduccion_salud"`
	Pension        float64        `json:"deduccion_pension"`
	Debt           float64        `json:"deuda_consumos"`
	Deductions     float64        `json:"total_deducciones"`
	Net            float64        `json:"neto_a_pagar"`
	HasPayslip     bool           `json:"has_payslip"`
}

type BatchResponse struct {
	ID            string          `json:"id"`
	BatchNumber   string          `json:"batch_number"`
	Period        string          `json:"quincena"`
	Status        string          `json:"status"`
	EmployeeCount int             `json:"employee_count"`
	TotalHours    float64         `json:"total_horas"`
	Gross         float64         `json:"total_bruto"`
	Deductions    float64         `json:"total_deducciones"`
	Net           float64         `json:"total_neto"`
	Entries       []EntryResponse `json:"entries,omitempty"`
	CreatedAt     string          `json:"created_at"`
}

// QueryFilter narrows batch history listing.
type QueryFilter struct {
	Period     string
	Status     string
	EmployeeID string
}
