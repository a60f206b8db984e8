package dayoff

import (
	"time"
)

// Grant adds a pool of discretionary days off to an employee. Grants are
// immutable once created; they only disappear through the employee cascade.
type Grant struct {
	ID         uint      `gorm:"primaryKey"`
	EmployeeID uint      `gorm:"not null;index"`
	Quantity   int       `gorm:"not null"`
	GrantDate  time.Time `gorm:"type:date;not null"`
	Reason     string    `gorm:"type:text"`
	CreatedAt  time.Time
}

func (Grant) TableName() string {
	return "day_off_grants"
}

// Request is a scheduled day off drawn from the granted pool.
// Status only ever moves PENDING -> TAKEN, and only once.
type Request struct {
	ID         uint      `gorm:"primaryKey"`
	EmployeeID uint      `gorm:"not null;index"`
	Date       time.Time `gorm:"type:date;not null"`
	Status     string    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Request) TableName() string {
	return "day_off_requests"
}
