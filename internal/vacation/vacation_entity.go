package vacation

import (
	"time"
)

// VacationRecord is one férias row for an employee. The schema deliberately
// allows more than one row per (employee, year); the balance column is entered
// by the operator, not derived from pending/taken.
type VacationRecord struct {
	ID          uint `gorm:"primaryKey"`
	EmployeeID  uint `gorm:"not null;index"`
	Year        int  `gorm:"not null"`
	DaysPending *int
	DaysTaken   *int
	Balance     *int
	Forecast    string     `gorm:"type:text"`
	SaleNote    string     `gorm:"type:text"`
	DateTaken   *time.Time `gorm:"type:date"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
