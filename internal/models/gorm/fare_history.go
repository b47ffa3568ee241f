package gorm

import (
	"time"

	"skylane/concourse/internal/constants"
)

// FareHistorySample is the append-only fare time series written by the
// demand simulator. Never updated or deleted.
type FareHistorySample struct {
	ID          int64               `gorm:"column:id;primaryKey;autoIncrement"`
	FlightID    int64               `gorm:"column:flight_id;not null;index:idx_fare_history_flight,priority:1"`
	Tier        constants.CabinTier `gorm:"column:tier;type:varchar(20);not null"`
	Fare        float64             `gorm:"column:fare;not null"`
	DemandIndex float64             `gorm:"column:demand_index;not null"`
	SampledAt   time.Time           `gorm:"column:sampled_at;not null;index:idx_fare_history_flight,priority:2"`
}

// TableName specifies the table name for GORM
func (FareHistorySample) TableName() string {
	return "fare_history"
}
