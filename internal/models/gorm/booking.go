package gorm

import (
	"time"

	"skylane/concourse/internal/constants"
)

// Booking is the gorm mirror of the bookings table. The transactional
// writes happen through the sqlx store; this model exists for schema
// migration and read-side queries.
type Booking struct {
	ID               int64                   `gorm:"column:id;primaryKey;autoIncrement"`
	BookingReference string                  `gorm:"column:booking_reference;type:uuid;not null;uniqueIndex"`
	PNR              *string                 `gorm:"column:pnr;type:varchar(6)"`
	UserID           int64                   `gorm:"column:user_id;not null;index"`
	FlightID         int64                   `gorm:"column:flight_id;not null;index"`
	Tier             constants.CabinTier     `gorm:"column:tier;type:varchar(20);not null"`
	Status           constants.BookingStatus `gorm:"column:status;type:varchar(20);not null;default:Held"`
	TotalFare        float64                 `gorm:"column:total_fare;not null"`
	PaidAmount       float64                 `gorm:"column:paid_amount;not null;default:0"`
	HoldExpiresAt    time.Time               `gorm:"column:hold_expires_at;not null;index"`
	TransactionID    *string                 `gorm:"column:transaction_id;type:varchar(40)"`
	CreatedAt        time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time               `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Tickets []Ticket `gorm:"foreignKey:BookingID"`
}

// TableName specifies the table name for GORM
func (Booking) TableName() string {
	return "bookings"
}
