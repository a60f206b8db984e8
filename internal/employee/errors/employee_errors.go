package employeeerrors

import (
	"net/http"

	"github.com/killerdias/controle-ferias/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrEmptyName = apperror.New(
		apperror.CodeInvalidInput,
		"Employee name must not be empty",
		http.StatusBadRequest,
	)
	ErrInvalidAdmissionDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid admission date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
