package pricing

import (
	"math"
	"time"

	"skylane/concourse/internal/common"
	"skylane/concourse/internal/constants"
)

// Snapshot is the value-type input to the fare computation. Callers load
// it from committed flight state; the engine itself never touches the
// database.
type Snapshot struct {
	BaseFares      constants.FareMap
	SeatsAvailable int
	SeatsTotal     int
	DepartureTime  time.Time
	DemandIndex    float64
}

// MaxFareMultiple caps any computed fare at this multiple of the base.
const MaxFareMultiple = 10.0

var classFactors = map[constants.CabinTier]float64{
	constants.TierEconomy:     1.0,
	constants.TierEconomyFlex: 1.2,
	constants.TierBusiness:    1.8,
	constants.TierFirst:       2.5,
}

// Fare computes the current fare for one tier. Deterministic for fixed
// inputs; the only error kind it produces is InvalidArgument.
func Fare(snap Snapshot, now time.Time, tier constants.CabinTier) (float64, error) {
	base, ok := snap.BaseFares[tier]
	if !ok {
		return 0, common.NewError(constants.KindInvalidArgument, "no base fare for tier %s", tier)
	}
	if base <= 0 {
		return 0, common.NewError(constants.KindInvalidArgument, "base fare for tier %s must be positive", tier)
	}
	if snap.SeatsTotal <= 0 {
		return 0, common.NewError(constants.KindInvalidArgument, "seats_total must be positive")
	}
	if snap.SeatsAvailable < 0 {
		return 0, common.NewError(constants.KindInvalidArgument, "seats_available must be non-negative")
	}
	if snap.SeatsAvailable > snap.SeatsTotal {
		return 0, common.NewError(constants.KindInvalidArgument, "seats_available cannot exceed seats_total")
	}
	if snap.DemandIndex < 0 || snap.DemandIndex > 100 {
		return 0, common.NewError(constants.KindInvalidArgument, "demand_index must be in [0,100]")
	}

	if !now.Before(snap.DepartureTime) {
		// Departure passed; the engine is only defined up to departure.
		return round2(base * MaxFareMultiple), nil
	}

	fill := 1 - float64(snap.SeatsAvailable)/float64(snap.SeatsTotal)
	hours := snap.DepartureTime.Sub(now).Hours()

	fare := base *
		inventoryFactor(fill) *
		timeFactor(hours) *
		demandFactor(snap.DemandIndex) *
		classFactors[tier]

	fare = math.Min(fare, base*MaxFareMultiple)
	fare = math.Max(fare, base)
	return round2(fare), nil
}

// inventoryFactor grows with the fill ratio; an empty cabin prices at 1.0.
func inventoryFactor(fill float64) float64 {
	switch {
	case fill <= 0.30:
		return 1.00
	case fill <= 0.60:
		return 1.10
	case fill <= 0.80:
		return 1.25
	default:
		return 1.40
	}
}

// timeFactor grows as departure approaches. Always >= 1.
func timeFactor(hoursToDeparture float64) float64 {
	switch {
	case hoursToDeparture > 720: // > 30 days
		return 1.00
	case hoursToDeparture > 168: // 7-30 days
		return 1.05
	case hoursToDeparture > 48: // 2-7 days
		return 1.15
	default: // <= 48 hours
		return 1.30
	}
}

// demandFactor is piecewise over the [0,100] demand index.
func demandFactor(demandIndex float64) float64 {
	switch {
	case demandIndex < 25:
		return 1.00
	case demandIndex < 50:
		return 1.15
	case demandIndex < 75:
		return 1.35
	default:
		return 1.60
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
