package hourserrors

import (
	"net/http"

	"go-nomina/internal/shared/apperror"
)

var (
	ErrHourRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Hour record not found",
		http.StatusNotFound,
	)
	ErrRecordAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"An hour record already exists for this employee and date",
		http.StatusConflict,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"Period must be in YYYY-MM form",
		http.StatusBadRequest,
	)
)

// FromValidation wraps an hour-quantity validation failure as a 400 carrying
// the violation message so handlers can surface it verbatim.
func FromValidation(err error) error {
	return apperror.New(
		apperror.CodeInvalidInput,
		err.Error(),
		http.StatusBadRequest,
	)
}
