package gorm

import (
	"time"

	"skylane/concourse/internal/constants"
)

// Aircraft describes an airframe and its cabin layout. The class
// distribution is authoritative for how many seats each tier gets when a
// flight's seat map is stamped out.
type Aircraft struct {
	ID                int64                       `gorm:"column:id;primaryKey;autoIncrement"`
	Registration      string                      `gorm:"column:registration;type:varchar(10);not null;uniqueIndex"`
	Model             string                      `gorm:"column:model;type:varchar(100);not null"`
	TotalSeats        int                         `gorm:"column:total_seats;not null"`
	ClassDistribution constants.ClassDistribution `gorm:"column:class_distribution;type:jsonb;not null"`
	CreatedAt         time.Time                   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time                   `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	SeatTemplates []AircraftSeatTemplate `gorm:"foreignKey:AircraftID"`
}

// TableName specifies the table name for GORM
func (Aircraft) TableName() string {
	return "aircrafts"
}

// AircraftSeatTemplate is one seat of an aircraft's cabin layout.
// Flight seat maps are copies of these rows.
type AircraftSeatTemplate struct {
	ID         int64                  `gorm:"column:id;primaryKey;autoIncrement"`
	AircraftID int64                  `gorm:"column:aircraft_id;not null;index"`
	SeatNumber string                 `gorm:"column:seat_number;type:varchar(5);not null"`
	Class      constants.CabinTier    `gorm:"column:class;type:varchar(20);not null"`
	Position   constants.SeatPosition `gorm:"column:position;type:varchar(10);not null"`
	Surcharge  float64                `gorm:"column:surcharge;not null;default:0"`
}

// TableName specifies the table name for GORM
func (AircraftSeatTemplate) TableName() string {
	return "aircraft_seat_templates"
}
