package vacationerrors

import (
	"net/http"

	"github.com/killerdias/controle-ferias/internal/shared/apperror"
)

var (
	ErrVacationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Vacation record not found",
		http.StatusNotFound,
	)
	ErrInvalidVacationID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid vacation record ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"Year must be a positive number",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrEmployeeReference = apperror.New(
		apperror.CodeForeignKey,
		"Vacation record references a nonexistent employee",
		http.StatusUnprocessableEntity,
	)
)
