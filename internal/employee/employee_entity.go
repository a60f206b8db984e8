package employee

import (
	"time"
)

type Employee struct {
	ID            uint      `gorm:"primaryKey"`
	Name          string    `gorm:"type:text;not null"`
	AdmissionDate time.Time `gorm:"type:date;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
