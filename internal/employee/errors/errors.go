package employeeerrors

import (
	"net/http"

	"go-nomina/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrCedulaAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"An employee with the same cedula already exists",
		http.StatusConflict,
	)
	ErrEmployeeNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee number already exists in this company",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmploymentType = apperror.New(
		apperror.CodeInvalidInput,
		"Employment type must be FIJO, TEMPORAL or CONTRATISTA",
		http.StatusBadRequest,
	)
	ErrSalaryBelowMinimum = apperror.New(
		apperror.CodeInvalidInput,
		"Salary cannot be below the legal monthly minimum",
		http.StatusBadRequest,
	)
)
