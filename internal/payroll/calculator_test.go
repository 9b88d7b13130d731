package payroll_test

import (
	"testing"

	"go-nomina/internal/employee"
	"go-nomina/internal/hours"
	"go-nomina/internal/payroll"
	payrollerrors "go-nomina/internal/payroll/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func legalConfig() payroll.CalcConfig {
	return payroll.CalcConfig{
		MinimumSalary:      decimal.NewFromInt(1423500),
		TransportAllowance: decimal.NewFromInt(100000),
		HealthPct:          decimal.NewFromFloat(4),
		PensionPct:         decimal.NewFromFloat(4),
		HourlyRate:         decimal.NewFromFloat(5931.25),
		HourTypes: map[string]payroll.HourTypeRate{
			hours.CategoryNight:                {DisplayName: "Recargo nocturno", SurchargePct: decimal.NewFromInt(35)},
			hours.CategorySundayDay:            {DisplayName: "Recargo diurno dominical", SurchargePct: decimal.NewFromInt(75)},
			hours.CategorySundayNight:          {DisplayName: "Recargo nocturno dominical", SurchargePct: decimal.NewFromInt(110)},
			hours.CategoryOvertimeDay:          {DisplayName: "Hora extra diurna", SurchargePct: decimal.NewFromInt(25)},
			hours.CategoryOvertimeNight:        {DisplayName: "Hora extra nocturna", SurchargePct: decimal.NewFromInt(75)},
			hours.CategoryHolidayDay:           {DisplayName: "Hora diurna dominical o festivo", SurchargePct: decimal.NewFromInt(80)},
			hours.CategoryHolidayDayOvertime:   {DisplayName: "Hora extra diurna dominical o festivo", SurchargePct: decimal.NewFromInt(105)},
			hours.CategoryHolidayNight:         {DisplayName: "Hora nocturna dominical o festivo", SurchargePct: decimal.NewFromInt(110)},
			hours.CategoryHolidayNightOvertime: {DisplayName: "Hora extra nocturna dominical o festivo", SurchargePct: decimal.NewFromInt(185)},
		},
	}
}

func permanentEmployee() payroll.EmployeeInput {
	return payroll.EmployeeInput{
		ID:              "emp-1",
		Name:            "Maria Lopez",
		NationalID:      "1020304050",
		EmploymentType:  employee.TypePermanent,
		BaseSalary:      decimal.NewFromInt(1500000),
		DeductHealth:    true,
		DeductPension:   true,
		DeductTransport: true,
		Debt:            decimal.Zero,
	}
}

func assertMoney(t *testing.T, expected string, actual decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, actual.Equal(decimal.RequireFromString(expected)),
		"%s: expected %s, got %s", msg, expected, actual)
}

func TestNewCalculator_ConfigValidation(t *testing.T) {
	t.Run("valid config accepted", func(t *testing.T) {
		calc, err := payroll.NewCalculator(legalConfig())
		assert.NoError(t, err)
		assert.NotNil(t, calc)
	})

	t.Run("zero hourly rate refused", func(t *testing.T) {
		cfg := legalConfig()
		cfg.HourlyRate = decimal.Zero
		_, err := payroll.NewCalculator(cfg)
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidHourlyRate)
	})

	t.Run("negative hourly rate refused", func(t *testing.T) {
		cfg := legalConfig()
		cfg.HourlyRate = decimal.NewFromInt(-1)
		_, err := payroll.NewCalculator(cfg)
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidHourlyRate)
	})

	t.Run("deduction percentage above 100 refused", func(t *testing.T) {
		cfg := legalConfig()
		cfg.PensionPct = decimal.NewFromInt(101)
		_, err := payroll.NewCalculator(cfg)
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidDeductionPct)
	})

	t.Run("negative surcharge refused", func(t *testing.T) {
		cfg := legalConfig()
		cfg.HourTypes[hours.CategoryNight] = payroll.HourTypeRate{SurchargePct: decimal.NewFromInt(-5)}
		_, err := payroll.NewCalculator(cfg)
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidSurchargePct)
	})

	t.Run("config is snapshotted at construction", func(t *testing.T) {
		cfg := legalConfig()
		calc, err := payroll.NewCalculator(cfg)
		assert.NoError(t, err)

		cfg.HourTypes[hours.CategoryNight] = payroll.HourTypeRate{SurchargePct: decimal.NewFromInt(900)}

		result := calc.Calculate(permanentEmployee(), hours.HourQuantities{Night: 2}, "2025-03")
		// 2 x 5931.25 x 1.35 = 16014.375 -> 16014.38
		assertMoney(t, "16014.38", result.Lines[0].Subtotal, "night subtotal")
	})
}

func TestCalculator_Calculate(t *testing.T) {
	calc, err := payroll.NewCalculator(legalConfig())
	assert.NoError(t, err)

	t.Run("statutory reference scenario", func(t *testing.T) {
		result := calc.Calculate(permanentEmployee(), hours.HourQuantities{
			Ordinary: 10,
			Night:    2,
		}, "2025-03")

		assert.Len(t, result.Lines, 2)
		assert.Equal(t, hours.CategoryOrdinary, result.Lines[0].Category)
		assertMoney(t, "59312.5", result.Lines[0].Subtotal, "ordinary subtotal")
		assert.Equal(t, hours.CategoryNight, result.Lines[1].Category)
		assertMoney(t, "16014.38", result.Lines[1].Subtotal, "night subtotal")

		assert.Equal(t, 12.0, result.TotalHours)
		assertMoney(t, "100000", result.Allowance, "allowance")
		assertMoney(t, "175326.88", result.Gross, "gross")
		assertMoney(t, "60000", result.Health, "health")
		assertMoney(t, "60000", result.Pension, "pension")
		assertMoney(t, "120000", result.Deductions, "deductions")
		assertMoney(t, "55326.88", result.Net, "net")
	})

	t.Run("zero-quantity categories omitted from the detail", func(t *testing.T) {
		result := calc.Calculate(permanentEmployee(), hours.HourQuantities{OvertimeDay: 1}, "2025-03")

		assert.Len(t, result.Lines, 1)
		assert.Equal(t, hours.CategoryOvertimeDay, result.Lines[0].Category)
	})

	t.Run("unconfigured category defaults to zero surcharge", func(t *testing.T) {
		cfg := legalConfig()
		delete(cfg.HourTypes, hours.CategoryNight)
		bare, err := payroll.NewCalculator(cfg)
		assert.NoError(t, err)

		result := bare.Calculate(permanentEmployee(), hours.HourQuantities{Night: 2}, "2025-03")

		assert.True(t, result.Lines[0].SurchargePct.IsZero())
		// 2 x 5931.25 with no surcharge
		assertMoney(t, "11862.5", result.Lines[0].Subtotal, "surcharge-free subtotal")
	})

	t.Run("idempotent over identical input", func(t *testing.T) {
		emp := permanentEmployee()
		q := hours.HourQuantities{Ordinary: 8, Night: 2, HolidayNightOvertime: 1}

		first := calc.Calculate(emp, q, "2025-03")
		second := calc.Calculate(emp, q, "2025-03")

		assert.Equal(t, first, second)
	})

	t.Run("more hours never decrease gross or net", func(t *testing.T) {
		emp := permanentEmployee()
		base := calc.Calculate(emp, hours.HourQuantities{Ordinary: 6}, "2025-03")

		bumped := []hours.HourQuantities{
			{Ordinary: 7},
			{Ordinary: 6, Night: 1},
			{Ordinary: 6, HolidayNightOvertime: 1},
		}
		for _, q := range bumped {
			result := calc.Calculate(emp, q, "2025-03")
			assert.True(t, result.Gross.GreaterThanOrEqual(base.Gross))
			assert.True(t, result.Net.GreaterThanOrEqual(base.Net))
		}
	})

	t.Run("temporary employment overrides deduction flags", func(t *testing.T) {
		emp := permanentEmployee()
		emp.EmploymentType = employee.TypeTemporary

		result := calc.Calculate(emp, hours.HourQuantities{Ordinary: 8}, "2025-03")

		assert.True(t, result.Allowance.IsZero())
		assert.True(t, result.Health.IsZero())
		assert.True(t, result.Pension.IsZero())
		assertMoney(t, "47450", result.Gross, "gross without allowance")
	})

	t.Run("contractor handled like permanent", func(t *testing.T) {
		emp := permanentEmployee()
		emp.EmploymentType = employee.TypeContractor

		result := calc.Calculate(emp, hours.HourQuantities{Ordinary: 8}, "2025-03")

		assertMoney(t, "100000", result.Allowance, "allowance")
		assertMoney(t, "60000", result.Health, "health")
	})

	t.Run("net pay floors at zero", func(t *testing.T) {
		emp := permanentEmployee()
		emp.DeductTransport = false
		emp.Debt = decimal.NewFromInt(500000)

		result := calc.Calculate(emp, hours.HourQuantities{Ordinary: 1}, "2025-03")

		assert.True(t, result.Deductions.GreaterThan(result.Gross))
		assert.True(t, result.Net.IsZero())
	})

	t.Run("debt deducted verbatim", func(t *testing.T) {
		emp := permanentEmployee()
		emp.Debt = decimal.NewFromInt(25000)

		result := calc.Calculate(emp, hours.HourQuantities{Ordinary: 10}, "2025-03")

		assertMoney(t, "25000", result.Debt, "debt")
		assertMoney(t, "145000", result.Deductions, "deductions with debt")
	})

	t.Run("result carries identity and period", func(t *testing.T) {
		result := calc.Calculate(permanentEmployee(), hours.HourQuantities{}, "2025-07")

		assert.Equal(t, "emp-1", result.EmployeeID)
		assert.Equal(t, "Maria Lopez", result.EmployeeName)
		assert.Equal(t, "2025-07", result.Period)
		assert.Empty(t, result.Lines)
	})
}

func TestCalculator_CalculateBatch(t *testing.T) {
	calc, err := payroll.NewCalculator(legalConfig())
	assert.NoError(t, err)

	ana := permanentEmployee()
	ana.ID = "emp-ana"
	ana.Name = "Ana Ruiz"

	pedro := permanentEmployee()
	pedro.ID = "emp-pedro"
	pedro.Name = "Pedro Marin"
	pedro.EmploymentType = employee.TypeTemporary

	t.Run("preserves input order and aggregates totals", func(t *testing.T) {
		batch := calc.CalculateBatch(
			[]payroll.EmployeeInput{ana, pedro},
			map[string]hours.HourQuantities{
				"emp-ana":   {Ordinary: 10, Night: 2},
				"emp-pedro": {Ordinary: 8},
			},
			"2025-03",
		)

		assert.Len(t, batch.Results, 2)
		assert.Equal(t, "emp-ana", batch.Results[0].EmployeeID)
		assert.Equal(t, "emp-pedro", batch.Results[1].EmployeeID)
		assert.Equal(t, 20.0, batch.TotalHours)

		expectedGross := batch.Results[0].Gross.Add(batch.Results[1].Gross)
		assert.True(t, batch.Gross.Equal(expectedGross))
		expectedNet := batch.Results[0].Net.Add(batch.Results[1].Net)
		assert.True(t, batch.Net.Equal(expectedNet))
	})

	t.Run("employee without recorded hours gets zero quantities", func(t *testing.T) {
		batch := calc.CalculateBatch(
			[]payroll.EmployeeInput{ana},
			map[string]hours.HourQuantities{},
			"2025-03",
		)

		assert.Len(t, batch.Results, 1)
		assert.Empty(t, batch.Results[0].Lines)
		// Allowance still applies even with zero worked hours.
		assertMoney(t, "100000", batch.Results[0].Gross, "gross")
	})
}
