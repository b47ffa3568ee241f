package entities

import (
	"time"

	"skylane/concourse/internal/constants"
)

type Ticket struct {
	ID               int64               `db:"id"`
	BookingID        int64               `db:"booking_id"`
	FlightID         int64               `db:"flight_id"`
	SeatID           int64               `db:"seat_id"`
	PassengerName    string              `db:"passenger_name"`
	PassengerAge     int                 `db:"passenger_age"`
	PassengerGender  string              `db:"passenger_gender"`
	AirlineName      string              `db:"airline_name"`
	FlightNumber     string              `db:"flight_number"`
	Route            string              `db:"route"`
	DepartureAirport string              `db:"departure_airport"`
	ArrivalAirport   string              `db:"arrival_airport"`
	DepartureCity    string              `db:"departure_city"`
	ArrivalCity      string              `db:"arrival_city"`
	DepartureTime    time.Time           `db:"departure_time"`
	ArrivalTime      time.Time           `db:"arrival_time"`
	SeatNumber       string              `db:"seat_number"`
	SeatClass        constants.CabinTier `db:"seat_class"`
	PricePaid        float64             `db:"price_paid"`
	Currency         string              `db:"currency"`
	TicketNumber     *string             `db:"ticket_number"`
	IssuedAt         *time.Time          `db:"issued_at"`
}
