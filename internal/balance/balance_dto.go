package balance

type BalanceResponse struct {
	EmployeeID uint `json:"employee_id"`
	Balance    int  `json:"balance"`
}

type DayOffSummaryResponse struct {
	EmployeeName string   `json:"employee_name"`
	TotalGranted int      `json:"total_granted"`
	TakenDates   []string `json:"taken_dates"`
	PendingDates []string `json:"pending_dates"`
	Balance      int      `json:"balance"`
	Text         string   `json:"text"`
}

type VacationSummaryEntry struct {
	Year        int     `json:"year"`
	DaysPending *int    `json:"days_pending"`
	DaysTaken   *int    `json:"days_taken"`
	Balance     *int    `json:"balance"`
	Forecast    string  `json:"forecast"`
	SaleNote    string  `json:"sale_note"`
	DateTaken   *string `json:"date_taken"`
}

type VacationSummaryResponse struct {
	EmployeeName string                 `json:"employee_name"`
	Records      []VacationSummaryEntry `json:"records"`
	Balance      int                    `json:"balance"`
	Text         string                 `json:"text"`
}
