package gorm

import (
	"time"

	"skylane/concourse/internal/constants"
)

// Flight is the central catalog row. demand_index is written only by the
// demand simulator; status, gate and delay fields only by staff.
type Flight struct {
	ID              int64                  `gorm:"column:id;primaryKey;autoIncrement"`
	FlightNumber    string                 `gorm:"column:flight_number;type:varchar(10);not null;uniqueIndex:idx_flight_number_date"`
	ScheduledDate   string                 `gorm:"column:scheduled_date;type:varchar(10);not null;uniqueIndex:idx_flight_number_date"`
	AirlineCode     string                 `gorm:"column:airline_code;type:varchar(2);not null;index"`
	OriginCode      string                 `gorm:"column:origin_code;type:varchar(3);not null;index:idx_flights_search,priority:2"`
	DestinationCode string                 `gorm:"column:destination_code;type:varchar(3);not null;index:idx_flights_search,priority:3"`
	AircraftID      int64                  `gorm:"column:aircraft_id;not null"`
	DepartureTime   time.Time              `gorm:"column:departure_time;not null;index:idx_flights_search,priority:1"`
	ArrivalTime     time.Time              `gorm:"column:arrival_time;not null"`
	BaseFares       constants.FareMap      `gorm:"column:base_fares;type:jsonb;not null"`
	DemandIndex     float64                `gorm:"column:demand_index;not null;default:50"`
	Status          constants.FlightStatus `gorm:"column:status;type:varchar(20);not null;default:Scheduled"`
	DelayMinutes    int                    `gorm:"column:delay_minutes;not null;default:0"`
	DelayReason     *string                `gorm:"column:delay_reason;type:varchar(200)"`
	Gate            *string                `gorm:"column:gate;type:varchar(10)"`
	Remarks         *string                `gorm:"column:remarks;type:varchar(200)"`
	CreatedAt       time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time              `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Aircraft Aircraft `gorm:"foreignKey:AircraftID"`
	Seats    []Seat   `gorm:"foreignKey:FlightID"`
}

// TableName specifies the table name for GORM
func (Flight) TableName() string {
	return "flights"
}

// DurationMinutes derives the block time from the schedule.
func (f *Flight) DurationMinutes() int {
	return int(f.ArrivalTime.Sub(f.DepartureTime).Minutes())
}
