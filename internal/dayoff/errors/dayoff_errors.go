package dayofferrors

import (
	"net/http"

	"github.com/killerdias/controle-ferias/internal/shared/apperror"
)

var (
	ErrGrantNotFound = apperror.New(
		apperror.CodeNotFound,
		"Day-off grant not found",
		http.StatusNotFound,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Day-off request not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid day-off request ID",
		http.StatusBadRequest,
	)
	ErrInvalidQuantity = apperror.New(
		apperror.CodeInvalidInput,
		"Quantity must be at least 1",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"Não há folgas disponíveis para marcar",
		http.StatusUnprocessableEntity,
	)
	ErrAlreadyTaken = apperror.New(
		apperror.CodeInvalidState,
		"Day-off request was already confirmed",
		http.StatusConflict,
	)
	ErrEmployeeReference = apperror.New(
		apperror.CodeForeignKey,
		"Day-off entry references a nonexistent employee",
		http.StatusUnprocessableEntity,
	)
)
