package gorm

import "time"

// Airline is a carrier in the catalog, keyed by 2-char IATA code
type Airline struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Code      string    `gorm:"column:code;type:varchar(2);not null;uniqueIndex"`
	Name      string    `gorm:"column:name;type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Airline) TableName() string {
	return "airlines"
}
