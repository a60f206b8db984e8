package auth

import (
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name      string `gorm:"type:varchar(255)"`
	Password  string `gorm:"type:text;not null"`
	Role      string `gorm:"type:varchar(20);not null;default:'user'"`
	IsActive  bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
