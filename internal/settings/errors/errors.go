package settingserrors

import (
	"net/http"

	"go-nomina/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
	ErrInvalidHourlyRate = apperror.New(
		apperror.CodeInvalidInput,
		"Ordinary hourly rate must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidPercentage = apperror.New(
		apperror.CodeInvalidInput,
		"Percentages must be between 0 and 100",
		http.StatusBadRequest,
	)
	ErrInvalidSurcharge = apperror.New(
		apperror.CodeInvalidInput,
		"Surcharge percentages cannot be negative",
		http.StatusBadRequest,
	)
	ErrUnknownHourType = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown hour type in rate table",
		http.StatusBadRequest,
	)
)
