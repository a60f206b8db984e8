package dayoff

type CreateGrantRequest struct {
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Reason    string `json:"reason"`
	GrantDate string `json:"grant_date"`
}

type CreateRequestRequest struct {
	Date string `json:"date" binding:"required"`
}

type GrantResponse struct {
	ID         uint   `json:"id"`
	EmployeeID uint   `json:"employee_id"`
	Quantity   int    `json:"quantity"`
	GrantDate  string `json:"grant_date"`
	Reason     string `json:"reason"`
}

type RequestResponse struct {
	ID         uint   `json:"id"`
	EmployeeID uint   `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}
