package entities

import (
	"time"

	"skylane/concourse/internal/constants"
)

type FareHistorySample struct {
	ID          int64               `db:"id"`
	FlightID    int64               `db:"flight_id"`
	Tier        constants.CabinTier `db:"tier"`
	Fare        float64             `db:"fare"`
	DemandIndex float64             `db:"demand_index"`
	SampledAt   time.Time           `db:"sampled_at"`
}
