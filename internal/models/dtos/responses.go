package dtos

import (
	"time"

	"skylane/concourse/internal/constants"
)

// APIResponse is the uniform JSON envelope returned by every endpoint.
type APIResponse[T any] struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Data      *T        `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
	ErrorKind string    `json:"error_kind,omitempty"`
}

// FlightSummary is one search result row. Prices and seat counts are
// computed at request time from committed state.
type FlightSummary struct {
	ID              int64                         `json:"id"`
	FlightNumber    string                        `json:"flight_number"`
	AirlineCode     string                        `json:"airline_code"`
	OriginCode      string                        `json:"origin_code"`
	DestinationCode string                        `json:"destination_code"`
	DepartureTime   time.Time                     `json:"departure_time"`
	ArrivalTime     time.Time                     `json:"arrival_time"`
	DurationMinutes int                           `json:"duration_minutes"`
	Status          constants.FlightStatus        `json:"status"`
	Gate            *string                       `json:"gate,omitempty"`
	DelayMinutes    int                           `json:"delay_minutes,omitempty"`
	DelayReason     *string                       `json:"delay_reason,omitempty"`
	Remarks         *string                       `json:"remarks,omitempty"`
	AircraftModel   string                        `json:"aircraft_model,omitempty"`
	PriceMap        map[constants.CabinTier]float64 `json:"price_map"`
	SeatsByClass    map[constants.CabinTier]int     `json:"seats_by_class"`
}

type SearchResponse struct {
	Flights  []FlightSummary `json:"flights"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Total    int             `json:"total"`
}

type TicketInfo struct {
	ID               int64               `json:"id"`
	PassengerName    string              `json:"passenger_name"`
	PassengerAge     int                 `json:"passenger_age,omitempty"`
	PassengerGender  string              `json:"passenger_gender,omitempty"`
	AirlineName      string              `json:"airline_name"`
	FlightNumber     string              `json:"flight_number"`
	Route            string              `json:"route"`
	DepartureAirport string              `json:"departure_airport"`
	ArrivalAirport   string              `json:"arrival_airport"`
	DepartureTime    time.Time           `json:"departure_time"`
	ArrivalTime      time.Time           `json:"arrival_time"`
	SeatNumber       string              `json:"seat_number"`
	SeatClass        constants.CabinTier `json:"seat_class"`
	PricePaid        float64             `json:"price_paid"`
	Currency         string              `json:"currency"`
	TicketNumber     *string             `json:"ticket_number,omitempty"`
	IssuedAt         *time.Time          `json:"issued_at,omitempty"`
}

type BookingResponse struct {
	BookingReference string                  `json:"booking_reference"`
	PNR              *string                 `json:"pnr,omitempty"`
	FlightID         int64                   `json:"flight_id"`
	Tier             constants.CabinTier     `json:"tier"`
	Status           constants.BookingStatus `json:"status"`
	TotalFare        float64                 `json:"total_fare"`
	PaidAmount       float64                 `json:"paid_amount"`
	HoldExpiresAt    time.Time               `json:"hold_expires_at"`
	TransactionID    *string                 `json:"transaction_id,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	Tickets          []TicketInfo            `json:"tickets,omitempty"`
}

// PNRStatusView is the redacted public view of a booking.
type PNRStatusView struct {
	PNR           string                  `json:"pnr"`
	Status        constants.BookingStatus `json:"status"`
	FlightNumber  string                  `json:"flight_number"`
	OriginCode    string                  `json:"origin_code"`
	DestCode      string                  `json:"destination_code"`
	DepartureTime time.Time               `json:"departure_time"`
	Passengers    int                     `json:"passengers"`
}

// ReceiptRecord is the structured document handed to an external
// renderer; the core does not care about the resulting bytes.
type ReceiptRecord struct {
	PNR              string       `json:"pnr"`
	BookingReference string       `json:"booking_reference"`
	FlightNumber     string       `json:"flight_number"`
	AirlineName      string       `json:"airline_name"`
	Route            string       `json:"route"`
	DepartureTime    time.Time    `json:"departure_time"`
	ArrivalTime      time.Time    `json:"arrival_time"`
	Tickets          []TicketInfo `json:"tickets"`
	TotalFare        float64      `json:"total_fare"`
	PaidAmount       float64      `json:"paid_amount"`
	PaidAt           time.Time    `json:"paid_at"`
	TransactionID    string       `json:"transaction_id"`
	Cancelled        bool         `json:"cancelled"`
}

// FeedEntry is one row of the airline schedule feed projection.
type FeedEntry struct {
	FlightNumber    string                 `json:"flight_number"`
	OriginCode      string                 `json:"origin_code"`
	DestinationCode string                 `json:"destination_code"`
	DepartureTime   time.Time              `json:"departure_time"`
	ArrivalTime     time.Time              `json:"arrival_time"`
	Status          constants.FlightStatus `json:"status"`
	Gate            *string                `json:"gate,omitempty"`
}

type FeedResponse struct {
	AirlineCode string      `json:"airline_code"`
	GeneratedAt time.Time   `json:"generated_at"`
	Flights     []FeedEntry `json:"flights"`
}

type AuthResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type PaymentInfo struct {
	BookingReference string                  `json:"booking_reference"`
	Amount           float64                 `json:"amount"`
	Method           constants.PaymentMethod `json:"method"`
	Status           constants.PaymentStatus `json:"status"`
	TransactionID    string                  `json:"transaction_id"`
	CreatedAt        time.Time               `json:"created_at"`
}
