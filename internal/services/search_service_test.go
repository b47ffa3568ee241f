package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	gormlib "gorm.io/gorm"

	"skylane/concourse/internal/common"
	"skylane/concourse/internal/constants"
	"skylane/concourse/internal/db/repositories"
	gormModels "skylane/concourse/internal/models/gorm"
)

// Setup test database
func setupTestDB(t *testing.T) *gormlib.DB {
	db, err := gormlib.Open(sqlite.Open(":memory:"), &gormlib.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Auto migrate
	if err := db.AutoMigrate(
		&gormModels.Airport{},
		&gormModels.Airline{},
		&gormModels.Aircraft{},
		&gormModels.Flight{},
		&gormModels.Seat{},
		&gormModels.User{},
	); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func searchFixture(t *testing.T) (*SearchService, *gormlib.DB, time.Time) {
	t.Helper()
	db := setupTestDB(t)

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, db.Create(&gormModels.Airport{Code: "DEL", Name: "Indira Gandhi International Airport", City: "New Delhi", Country: "India"}).Error)
	require.NoError(t, db.Create(&gormModels.Airport{Code: "BOM", Name: "Chhatrapati Shivaji Maharaj International Airport", City: "Mumbai", Country: "India"}).Error)
	require.NoError(t, db.Create(&gormModels.Airline{Code: "6E", Name: "IndiGo"}).Error)

	aircraft := gormModels.Aircraft{
		Registration: "VT-TST",
		Model:        "Airbus A320neo",
		TotalSeats:   6,
		ClassDistribution: constants.ClassDistribution{
			constants.TierEconomy:  4,
			constants.TierBusiness: 2,
		},
	}
	require.NoError(t, db.Create(&aircraft).Error)

	mkFlight := func(number string, depOffset time.Duration, duration time.Duration, economyBase float64, status constants.FlightStatus) gormModels.Flight {
		dep := now.Add(depOffset)
		flight := gormModels.Flight{
			FlightNumber:    number,
			ScheduledDate:   dep.Format("2006-01-02"),
			AirlineCode:     "6E",
			OriginCode:      "DEL",
			DestinationCode: "BOM",
			AircraftID:      aircraft.ID,
			DepartureTime:   dep,
			ArrivalTime:     dep.Add(duration),
			BaseFares: constants.FareMap{
				constants.TierEconomy:  economyBase,
				constants.TierBusiness: economyBase * 2,
			},
			DemandIndex: 10,
			Status:      status,
		}
		require.NoError(t, db.Create(&flight).Error)

		for i := 0; i < 4; i++ {
			require.NoError(t, db.Create(&gormModels.Seat{
				FlightID:   flight.ID,
				SeatNumber: fmt.Sprintf("3%c", 'A'+i),
				Class:      constants.TierEconomy,
				Position:   constants.PositionWindow,
				Status:     constants.SeatAvailable,
			}).Error)
		}
		for i := 0; i < 2; i++ {
			require.NoError(t, db.Create(&gormModels.Seat{
				FlightID:   flight.ID,
				SeatNumber: fmt.Sprintf("1%c", 'A'+i),
				Class:      constants.TierBusiness,
				Position:   constants.PositionAisle,
				Status:     constants.SeatAvailable,
			}).Error)
		}
		return flight
	}

	mkFlight("6E101", 72*time.Hour, 130*time.Minute, 5000, constants.FlightScheduled)
	mkFlight("6E202", 75*time.Hour, 110*time.Minute, 3000, constants.FlightScheduled)
	mkFlight("6E303", 78*time.Hour, 120*time.Minute, 4000, constants.FlightCancelled)

	flights := repositories.NewFlightRepository(db)
	catalog := NewCatalogService(
		repositories.NewAirportRepository(db),
		repositories.NewAirlineRepository(db),
		common.NewCacheService(60, 120),
	)

	svc := NewSearchService(flights, catalog, nil)
	svc.SetClock(func() time.Time { return now })
	return svc, db, now
}

func TestSearch_ReturnsPricedSummariesAndExcludesCancelled(t *testing.T) {
	svc, _, _ := searchFixture(t)

	result, err := svc.Search(context.Background(), SearchParams{
		Origin:      "DEL",
		Destination: "BOM",
		Passengers:  1,
	})
	require.NoError(t, err)
	require.Len(t, result.Flights, 2, "cancelled flight must not appear")

	for _, f := range result.Flights {
		assert.NotContains(t, []string{"6E303"}, f.FlightNumber)
		assert.Equal(t, 4, f.SeatsByClass[constants.TierEconomy])
		assert.Equal(t, 2, f.SeatsByClass[constants.TierBusiness])

		economy := f.PriceMap[constants.TierEconomy]
		assert.Greater(t, economy, 0.0)
		// Floor: never below the economy base fare.
		if f.FlightNumber == "6E101" {
			assert.GreaterOrEqual(t, economy, 5000.0)
		}
		assert.Greater(t, f.DurationMinutes, 0)
	}
}

func TestSearch_SortByPriceThenDuration(t *testing.T) {
	svc, _, _ := searchFixture(t)
	ctx := context.Background()

	byPrice, err := svc.Search(ctx, SearchParams{
		Origin: "DEL", Destination: "BOM", Passengers: 1, SortBy: SortByPrice,
	})
	require.NoError(t, err)
	require.Len(t, byPrice.Flights, 2)
	assert.Equal(t, "6E202", byPrice.Flights[0].FlightNumber, "cheaper flight first")

	byDuration, err := svc.Search(ctx, SearchParams{
		Origin: "DEL", Destination: "BOM", Passengers: 1, SortBy: SortByDuration,
	})
	require.NoError(t, err)
	assert.Equal(t, "6E202", byDuration.Flights[0].FlightNumber, "shorter flight first")
}

func TestSearch_UnknownAirportIsNotFound(t *testing.T) {
	svc, _, _ := searchFixture(t)

	_, err := svc.Search(context.Background(), SearchParams{
		Origin: "XXX", Destination: "BOM", Passengers: 1,
	})
	require.Error(t, err)
	assert.Equal(t, constants.KindNotFound, common.KindOf(err))
}

func TestSearch_PassengerCountValidated(t *testing.T) {
	svc, _, _ := searchFixture(t)

	_, err := svc.Search(context.Background(), SearchParams{
		Origin: "DEL", Destination: "BOM", Passengers: 0,
	})
	require.Error(t, err)
	assert.Equal(t, constants.KindInvalidArgument, common.KindOf(err))
}

func TestSearch_OversubscribedFlightStillReturned(t *testing.T) {
	svc, _, _ := searchFixture(t)

	// More passengers than any cabin holds: the flight still shows, the
	// UI decides what to do with it.
	result, err := svc.Search(context.Background(), SearchParams{
		Origin: "DEL", Destination: "BOM", Passengers: 9,
	})
	require.NoError(t, err)
	assert.Len(t, result.Flights, 2)
}

func TestSearch_DateFilterMatchesUTCDay(t *testing.T) {
	svc, _, now := searchFixture(t)

	day := now.Add(72 * time.Hour)
	result, err := svc.Search(context.Background(), SearchParams{
		Origin: "DEL", Destination: "BOM", Passengers: 1, Date: &day,
	})
	require.NoError(t, err)
	require.Len(t, result.Flights, 2)

	other := now.Add(240 * time.Hour)
	empty, err := svc.Search(context.Background(), SearchParams{
		Origin: "DEL", Destination: "BOM", Passengers: 1, Date: &other,
	})
	require.NoError(t, err)
	assert.Empty(t, empty.Flights)
}

func TestSearch_TierFilterNarrowsPriceMap(t *testing.T) {
	svc, _, _ := searchFixture(t)

	tier := constants.TierBusiness
	result, err := svc.Search(context.Background(), SearchParams{
		Origin: "DEL", Destination: "BOM", Passengers: 1, Tier: &tier,
	})
	require.NoError(t, err)
	for _, f := range result.Flights {
		assert.Contains(t, f.PriceMap, constants.TierBusiness)
		assert.NotContains(t, f.PriceMap, constants.TierEconomy)
	}
}

func TestSummary_NotFound(t *testing.T) {
	svc, _, _ := searchFixture(t)

	_, err := svc.Summary(context.Background(), 9999)
	require.Error(t, err)
	assert.Equal(t, constants.KindNotFound, common.KindOf(err))
}
