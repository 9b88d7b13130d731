package payrollerrors

import (
	"net/http"

	"go-nomina/internal/shared/apperror"
)

var (
	ErrBatchNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll batch not found",
		http.StatusNotFound,
	)
	ErrEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll entry not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"Period must be in YYYY-MM form",
		http.StatusBadRequest,
	)
	ErrNoEmployees = apperror.New(
		apperror.CodeInvalidInput,
		"No employees available for this calculation",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeConflict,
		"Only DRAFT batches can be marked paid or voided",
		http.StatusConflict,
	)
	ErrPayslipNotReady = apperror.New(
		apperror.CodeNotFound,
		"Payslip has not been generated yet",
		http.StatusNotFound,
	)

	// Configuration errors refuse calculator construction.
	ErrInvalidHourlyRate = apperror.New(
		apperror.CodeInvalidInput,
		"Ordinary hourly rate must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidDeductionPct = apperror.New(
		apperror.CodeInvalidInput,
		"Health and pension percentages must be between 0 and 100",
		http.StatusBadRequest,
	)
	ErrInvalidSurchargePct = apperror.New(
		apperror.CodeInvalidInput,
		"Surcharge percentages cannot be negative",
		http.StatusBadRequest,
	)
)
