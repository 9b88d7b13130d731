package payroll

import (
	"go-nomina/internal/employee"
	"go-nomina/internal/hours"
	payrollerrors "go-nomina/internal/payroll/errors"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// HourTypeRate is one entry of the surcharge table the calculator consumes.
type HourTypeRate struct {
	DisplayName      string
	SurchargePct     decimal.Decimal
	AppliesPermanent bool
	AppliesTemporary bool
}

// CalcConfig is the configuration snapshot a Calculator is built from.
type CalcConfig struct {
	MinimumSalary      decimal.Decimal
	TransportAllowance decimal.Decimal
	HealthPct          decimal.Decimal
	PensionPct         decimal.Decimal
	HourlyRate         decimal.Decimal
	HourTypes          map[string]HourTypeRate
}

// EmployeeInput is the employee snapshot consumed per calculation. The
// calculator owns none of it and keeps no reference after returning.
type EmployeeInput struct {
	ID              string
	Name            string
	NationalID      string
	EmploymentType  string
	BaseSalary      decimal.Decimal
	DeductHealth    bool
	DeductPension   bool
	DeductTransport bool
	Debt            decimal.Decimal
}

// LineItem is one hour-type row of an itemized result. Quantities of zero
// never produce a line.
type LineItem struct {
	Category        string          `json:"tipo"`
	DisplayName     string          `json:"nombre"`
	Quantity        float64         `json:"cantidad"`
	UnitRate        decimal.Decimal `json:"valor_hora"`
	SurchargePct    decimal.Decimal `json:"porcentaje"`
	SurchargeAmount decimal.Decimal `json:"valor_recargo"`
	TotalUnitRate   decimal.Decimal `json:"valor_hora_total"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

// Result is one employee's fully itemized payroll for one period.
type Result struct {
	EmployeeID     string          `json:"employee_id"`
	EmployeeName   string          `json:"nombre"`
	NationalID     string          `json:"cedula"`
	EmploymentType string          `json:"tipo"`
	Period         string          `json:"quincena"`
	Lines          []LineItem      `json:"detalle"`
	TotalHours     float64         `json:"total_horas"`
	Gross          decimal.Decimal `json:"total_bruto"`
	Allowance      decimal.Decimal `json:"auxilio_transporte"`
	Health         decimal.Decimal `json:"deduccion_salud"`
	Pension        decimal.Decimal `json:"deduccion_pension"`
	Debt           decimal.Decimal `json:"deuda_consumos"`
	Deductions     decimal.Decimal `json:"total_deducciones"`
	Net            decimal.Decimal `json:"neto_a_pagar"`
}

// BatchResult aggregates per-employee results for one period. Results keep
// the input employee order.
type BatchResult struct {
	Period     string          `json:"quincena"`
	Results    []Result        `json:"resultados"`
	TotalHours float64         `json:"total_horas"`
	Gross      decimal.Decimal `json:"total_bruto"`
	Deductions decimal.Decimal `json:"total_deducciones"`
	Net        decimal.Decimal `json:"total_neto"`
}

// Calculator computes itemized payroll from an immutable configuration
// snapshot. It performs no I/O and never logs; instances are safe for
// concurrent use.
type Calculator struct {
	cfg CalcConfig
}

// NewCalculator validates the configuration and captures it by value.
// Later changes to the caller's CalcConfig do not affect this instance.
func NewCalculator(cfg CalcConfig) (*Calculator, error) {
	if !cfg.HourlyRate.IsPositive() {
		return nil, payrollerrors.ErrInvalidHourlyRate
	}
	if cfg.HealthPct.IsNegative() || cfg.HealthPct.GreaterThan(oneHundred) ||
		cfg.PensionPct.IsNegative() || cfg.PensionPct.GreaterThan(oneHundred) {
		return nil, payrollerrors.ErrInvalidDeductionPct
	}
	for _, rate := range cfg.HourTypes {
		if rate.SurchargePct.IsNegative() {
			return nil, payrollerrors.ErrInvalidSurchargePct
		}
	}

	snapshot := cfg
	snapshot.HourTypes = make(map[string]HourTypeRate, len(cfg.HourTypes))
	for category, rate := range cfg.HourTypes {
		snapshot.HourTypes[category] = rate
	}

	return &Calculator{cfg: snapshot}, nil
}

// Calculate computes one employee's payroll. Quantities are assumed to have
// passed hour validation already; unconfigured hour types fall back to a 0%
// surcharge rather than failing. A TEMPORAL employee never receives the
// transport allowance or statutory deductions, whatever the stored flags say.
func (c *Calculator) Calculate(emp EmployeeInput, quantities hours.HourQuantities, period string) Result {
	deductHealth := emp.DeductHealth
	deductPension := emp.DeductPension
	deductTransport := emp.DeductTransport
	if emp.EmploymentType == employee.TypeTemporary {
		deductHealth = false
		deductPension = false
		deductTransport = false
	}

	result := Result{
		EmployeeID:     emp.ID,
		EmployeeName:   emp.Name,
		NationalID:     emp.NationalID,
		EmploymentType: emp.EmploymentType,
		Period:         period,
		Lines:          []LineItem{},
		Gross:          decimal.Zero,
		Allowance:      decimal.Zero,
		Health:         decimal.Zero,
		Pension:        decimal.Zero,
		Debt:           emp.Debt,
	}

	for _, item := range quantities.Items() {
		if item.Value == 0 {
			continue
		}

		pct := decimal.Zero
		displayName := item.Category
		if rate, ok := c.cfg.HourTypes[item.Category]; ok {
			pct = rate.SurchargePct
			if rate.DisplayName != "" {
				displayName = rate.DisplayName
			}
		}

		surcharge := c.cfg.HourlyRate.Mul(pct).Div(oneHundred)
		totalUnitRate := c.cfg.HourlyRate.Add(surcharge)
		subtotal := decimal.NewFromFloat(item.Value).Mul(totalUnitRate).Round(2)

		result.Lines = append(result.Lines, LineItem{
			Category:        item.Category,
			DisplayName:     displayName,
			Quantity:        item.Value,
			UnitRate:        c.cfg.HourlyRate,
			SurchargePct:    pct,
			SurchargeAmount: surcharge.Round(2),
			TotalUnitRate:   totalUnitRate.Round(2),
			Subtotal:        subtotal,
		})

		result.TotalHours += item.Value
		result.Gross = result.Gross.Add(subtotal)
	}

	if deductTransport {
		result.Allowance = c.cfg.TransportAllowance
		result.Gross = result.Gross.Add(result.Allowance)
	}

	// Deductions run on the contractual base salary, not the computed gross.
	if deductHealth {
		result.Health = emp.BaseSalary.Mul(c.cfg.HealthPct).Div(oneHundred).Round(2)
	}
	if deductPension {
		result.Pension = emp.BaseSalary.Mul(c.cfg.PensionPct).Div(oneHundred).Round(2)
	}

	result.Deductions = result.Health.Add(result.Pension).Add(result.Debt)

	result.Net = result.Gross.Sub(result.Deductions)
	if result.Net.IsNegative() {
		// Deductions never drive net pay negative; the shortfall is absorbed.
		result.Net = decimal.Zero
	}

	return result
}

// CalculateBatch runs Calculate for every employee against one shared
// snapshot. Employees with no recorded hours for the period get all-zero
// quantities. Output order matches input order.
func (c *Calculator) CalculateBatch(
	employees []EmployeeInput,
	hoursByEmployee map[string]hours.HourQuantities,
	period string,
) BatchResult {
	batch := BatchResult{
		Period:     period,
		Results:    make([]Result, 0, len(employees)),
		Gross:      decimal.Zero,
		Deductions: decimal.Zero,
		Net:        decimal.Zero,
	}

	for _, emp := range employees {
		result := c.Calculate(emp, hoursByEmployee[emp.ID], period)
		batch.Results = append(batch.Results, result)
		batch.TotalHours += result.TotalHours
		batch.Gross = batch.Gross.Add(result.Gross)
		batch.Deductions = batch.Deductions.Add(result.Deductions)
		batch.Net = batch.Net.Add(result.Net)
	}

	return batch
}
