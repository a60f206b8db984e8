package vacation

type CreateVacationRequest struct {
	Year        int    `json:"year" binding:"required"`
	DaysPending *int   `json:"days_pending" binding:"omitempty,min=0"`
	DaysTaken   *int   `json:"days_taken" binding:"omitempty,min=0"`
	Balance     *int   `json:"balance"`
	Forecast    string `json:"forecast"`
	SaleNote    string `json:"sale_note"`
	DateTaken   string `json:"date_taken"`
}

type UpdateVacationRequest struct {
	Year        int    `json:"year" binding:"required"`
	DaysPending *int   `json:"days_pending" binding:"omitempty,min=0"`
	DaysTaken   *int   `json:"days_taken" binding:"omitempty,min=0"`
	Balance     *int   `json:"balance"`
	Forecast    string `json:"forecast"`
	SaleNote    string `json:"sale_note"`
	DateTaken   string `json:"date_taken"`
}

type VacationResponse struct {
	ID          uint    `json:"id"`
	EmployeeID  uint    `json:"employee_id"`
	Year        int     `json:"year"`
	DaysPending *int    `json:"days_pending"`
	DaysTaken   *int    `json:"days_taken"`
	Balance     *int    `json:"balance"`
	Forecast    string  `json:"forecast"`
	SaleNote    string  `json:"sale_note"`
	DateTaken   *string `json:"date_taken"`
}
