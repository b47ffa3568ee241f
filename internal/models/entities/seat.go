package entities

import "skylane/concourse/internal/constants"

type Seat struct {
	ID         int64                  `db:"id"`
	FlightID   int64                  `db:"flight_id"`
	SeatNumber string                 `db:"seat_number"`
	Class      constants.CabinTier    `db:"class"`
	Position   constants.SeatPosition `db:"position"`
	Surcharge  float64                `db:"surcharge"`
	Status     constants.SeatStatus   `db:"status"`
	BookingID  *int64                 `db:"booking_id"`
}
