package gorm

import "time"

// Airport represents one row of the read-mostly airport catalog
type Airport struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Code      string    `gorm:"column:code;type:varchar(3);not null;uniqueIndex"`
	Name      string    `gorm:"column:name;type:text;not null"`
	City      string    `gorm:"column:city;type:varchar(100)"`
	Country   string    `gorm:"column:country;type:varchar(100)"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Airport) TableName() string {
	return "airports"
}
