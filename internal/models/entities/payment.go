package entities

import (
	"time"

	"skylane/concourse/internal/constants"
)

type Payment struct {
	ID               int64                   `db:"id"`
	BookingReference string                  `db:"booking_reference"`
	Amount           float64                 `db:"amount"`
	Method           constants.PaymentMethod `db:"method"`
	Status           constants.PaymentStatus `db:"status"`
	TransactionID    string                  `db:"transaction_id"`
	CreatedAt        time.Time               `db:"created_at"`
}
