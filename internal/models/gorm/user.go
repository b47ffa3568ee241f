package gorm

import (
	"time"

	"skylane/concourse/internal/constants"
)

type User struct {
	ID           int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Email        string         `gorm:"column:email;type:varchar(254);not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;type:varchar(100);not null"`
	FullName     string         `gorm:"column:full_name;type:varchar(100)"`
	Phone        *string        `gorm:"column:phone;type:varchar(20)"`
	Role         constants.Role `gorm:"column:role;type:varchar(20);not null;default:customer"`
	AirlineCode  *string        `gorm:"column:airline_code;type:varchar(2)"`
	IsActive     bool           `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
