package employee

import (
	"github.com/killerdias/controle-ferias/internal/dayoff"
	"github.com/killerdias/controle-ferias/internal/vacation"
)

type CreateEmployeeRequest struct {
	Name          string `json:"name" binding:"required"`
	AdmissionDate string `json:"admission_date" binding:"required"`
}

type UpdateEmployeeRequest struct {
	Name          string `json:"name" binding:"required"`
	AdmissionDate string `json:"admission_date" binding:"required"`
}

type EmployeeResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	AdmissionDate string `json:"admission_date"`
}

// EmployeeDetailResponse is the one-call view of an employee: every ledger
// row plus both derived balances.
type EmployeeDetailResponse struct {
	Employee        EmployeeResponse            `json:"employee"`
	Vacations       []vacation.VacationResponse `json:"vacations"`
	Grants          []dayoff.GrantResponse      `json:"grants"`
	Requests        []dayoff.RequestResponse    `json:"requests"`
	DayOffBalance   int                         `json:"day_off_balance"`
	VacationBalance int                         `json:"vacation_balance"`
}
