package gorm

import (
	"time"

	"skylane/concourse/internal/constants"
)

// Ticket denormalizes the flight summary so a receipt renders without
// joins even after the catalog changes.
type Ticket struct {
	ID               int64               `gorm:"column:id;primaryKey;autoIncrement"`
	BookingID        int64               `gorm:"column:booking_id;not null;index"`
	FlightID         int64               `gorm:"column:flight_id;not null"`
	SeatID           int64               `gorm:"column:seat_id;not null"`
	PassengerName    string              `gorm:"column:passenger_name;type:varchar(100);not null"`
	PassengerAge     int                 `gorm:"column:passenger_age"`
	PassengerGender  string              `gorm:"column:passenger_gender;type:varchar(10)"`
	AirlineName      string              `gorm:"column:airline_name;type:varchar(100);not null"`
	FlightNumber     string              `gorm:"column:flight_number;type:varchar(10);not null"`
	Route            string              `gorm:"column:route;type:varchar(50);not null"`
	DepartureAirport string              `gorm:"column:departure_airport;type:varchar(3);not null"`
	ArrivalAirport   string              `gorm:"column:arrival_airport;type:varchar(3);not null"`
	DepartureCity    string              `gorm:"column:departure_city;type:varchar(100)"`
	ArrivalCity      string              `gorm:"column:arrival_city;type:varchar(100)"`
	DepartureTime    time.Time           `gorm:"column:departure_time;not null"`
	ArrivalTime      time.Time           `gorm:"column:arrival_time;not null"`
	SeatNumber       string              `gorm:"column:seat_number;type:varchar(5);not null"`
	SeatClass        constants.CabinTier `gorm:"column:seat_class;type:varchar(20);not null"`
	PricePaid        float64             `gorm:"column:price_paid;not null"`
	Currency         string              `gorm:"column:currency;type:varchar(10);not null;default:INR"`
	TicketNumber     *string             `gorm:"column:ticket_number;type:varchar(40);uniqueIndex"`
	IssuedAt         *time.Time          `gorm:"column:issued_at"`
}

// TableName specifies the table name for GORM
func (Ticket) TableName() string {
	return "tickets"
}
