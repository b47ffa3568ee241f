package dtos

// PassengerInput describes one traveller on a hold request. SeatID is
// optional; when absent the next available seat of the tier is taken.
type PassengerInput struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
	SeatID *int64 `json:"seat_id,omitempty"`
}

// CreateBookingRequest opens a hold. QuotedUnitFare echoes the fare the
// client saw in search; a drift beyond tolerance aborts the hold.
type CreateBookingRequest struct {
	UserID         int64            `json:"user_id"`
	FlightID       int64            `json:"flight_id"`
	Tier           string           `json:"tier"`
	Passengers     []PassengerInput `json:"passengers"`
	QuotedUnitFare float64          `json:"quoted_unit_fare"`
}

type PaymentRequest struct {
	BookingReference string  `json:"booking_reference"`
	Amount           float64 `json:"amount"`
	Method           string  `json:"method"`
}

type FlightOpsUpdateRequest struct {
	Status       string  `json:"status"`
	DelayMinutes int     `json:"delay_minutes"`
	DelayReason  *string `json:"delay_reason,omitempty"`
	Remarks      *string `json:"remarks,omitempty"`
}

type AssignGateRequest struct {
	Gate string `json:"gate"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
