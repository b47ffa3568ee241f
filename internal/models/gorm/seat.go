package gorm

import (
	"skylane/concourse/internal/constants"
)

// Seat is one physical seat on one flight. booking_id is non-null iff the
// seat is Held or Sold, and only one active booking may ever reference it.
type Seat struct {
	ID         int64                  `gorm:"column:id;primaryKey;autoIncrement"`
	FlightID   int64                  `gorm:"column:flight_id;not null;uniqueIndex:idx_flight_seat,priority:1"`
	SeatNumber string                 `gorm:"column:seat_number;type:varchar(5);not null;uniqueIndex:idx_flight_seat,priority:2"`
	Class      constants.CabinTier    `gorm:"column:class;type:varchar(20);not null;index"`
	Position   constants.SeatPosition `gorm:"column:position;type:varchar(10);not null"`
	Surcharge  float64                `gorm:"column:surcharge;not null;default:0"`
	Status     constants.SeatStatus   `gorm:"column:status;type:varchar(10);not null;default:Available"`
	BookingID  *int64                 `gorm:"column:booking_id;index"`
}

// TableName specifies the table name for GORM
func (Seat) TableName() string {
	return "seats"
}
