package entities

import (
	"time"

	"skylane/concourse/internal/constants"
)

type Booking struct {
	ID               int64                   `db:"id"`
	BookingReference string                  `db:"booking_reference"`
	PNR              *string                 `db:"pnr"`
	UserID           int64                   `db:"user_id"`
	FlightID         int64                   `db:"flight_id"`
	Tier             constants.CabinTier     `db:"tier"`
	Status           constants.BookingStatus `db:"status"`
	TotalFare        float64                 `db:"total_fare"`
	PaidAmount       float64                 `db:"paid_amount"`
	HoldExpiresAt    time.Time               `db:"hold_expires_at"`
	TransactionID    *string                 `db:"transaction_id"`
	CreatedAt        time.Time               `db:"created_at"`
	UpdatedAt        time.Time               `db:"updated_at"`
}
