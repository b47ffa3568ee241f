package entities

import (
	"time"

	"skylane/concourse/internal/constants"
)

// Flight is the sqlx projection of a flights row, scanned inside booking
// and simulator transactions.
type Flight struct {
	ID              int64                  `db:"id"`
	FlightNumber    string                 `db:"flight_number"`
	ScheduledDate   string                 `db:"scheduled_date"`
	AirlineCode     string                 `db:"airline_code"`
	OriginCode      string                 `db:"origin_code"`
	DestinationCode string                 `db:"destination_code"`
	AircraftID      int64                  `db:"aircraft_id"`
	DepartureTime   time.Time              `db:"departure_time"`
	ArrivalTime     time.Time              `db:"arrival_time"`
	BaseFares       constants.FareMap      `db:"base_fares"`
	DemandIndex     float64                `db:"demand_index"`
	Status          constants.FlightStatus `db:"status"`
	DelayMinutes    int                    `db:"delay_minutes"`
	DelayReason     *string                `db:"delay_reason"`
	Gate            *string                `db:"gate"`
	Remarks         *string                `db:"remarks"`
	CreatedAt       time.Time              `db:"created_at"`
	UpdatedAt       time.Time              `db:"updated_at"`
}
