package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skylane/concourse/internal/common"
	"skylane/concourse/internal/constants"
	"skylane/concourse/internal/db/repositories"
	"skylane/concourse/internal/models/dtos"
	gormModels "skylane/concourse/internal/models/gorm"
)

func TestFlightOps_StaffUpdatesOwnAirlineOnly(t *testing.T) {
	_, db, _ := searchFixture(t)
	svc := NewFlightOpsService(repositories.NewFlightRepository(db))
	ctx := context.Background()

	var flight gormModels.Flight
	require.NoError(t, db.Where("flight_number = ?", "6E101").First(&flight).Error)

	reason := "late inbound aircraft"
	req := dtosFlightDelay("Delayed", 45, &reason)

	own := "6E"
	updated, err := svc.UpdateStatus(ctx, flight.ID, req, constants.RoleAirlineStaff, &own)
	require.NoError(t, err)
	assert.Equal(t, constants.FlightDelayed, updated.Status)
	assert.Equal(t, 45, updated.DelayMinutes)
	require.NotNil(t, updated.DelayReason)
	assert.Equal(t, reason, *updated.DelayReason)

	other := "AI"
	_, err = svc.UpdateStatus(ctx, flight.ID, req, constants.RoleAirlineStaff, &other)
	require.Error(t, err)
	assert.Equal(t, constants.KindForbidden, common.KindOf(err))

	_, err = svc.UpdateStatus(ctx, flight.ID, req, constants.RoleCustomer, nil)
	require.Error(t, err)
	assert.Equal(t, constants.KindForbidden, common.KindOf(err))
}

func TestFlightOps_InvalidStatusRejected(t *testing.T) {
	_, db, _ := searchFixture(t)
	svc := NewFlightOpsService(repositories.NewFlightRepository(db))

	var flight gormModels.Flight
	require.NoError(t, db.Where("flight_number = ?", "6E101").First(&flight).Error)

	_, err := svc.UpdateStatus(context.Background(), flight.ID, dtosFlightDelay("Vanished", 0, nil), constants.RoleAdmin, nil)
	require.Error(t, err)
	assert.Equal(t, constants.KindInvalidArgument, common.KindOf(err))
}

func TestFlightOps_GateAssignmentNeedsAuthority(t *testing.T) {
	_, db, _ := searchFixture(t)
	svc := NewFlightOpsService(repositories.NewFlightRepository(db))
	ctx := context.Background()

	var flight gormModels.Flight
	require.NoError(t, db.Where("flight_number = ?", "6E202").First(&flight).Error)

	updated, err := svc.AssignGate(ctx, flight.ID, "T3-42", constants.RoleAirportAuthority)
	require.NoError(t, err)
	require.NotNil(t, updated.Gate)
	assert.Equal(t, "T3-42", *updated.Gate)

	_, err = svc.AssignGate(ctx, flight.ID, "T3-43", constants.RoleAirlineStaff)
	require.Error(t, err)
	assert.Equal(t, constants.KindForbidden, common.KindOf(err))
}

func TestFeed_ProjectsUpcomingScheduleForAirline(t *testing.T) {
	_, db, now := searchFixture(t)
	feed := NewFeedService(
		repositories.NewFlightRepository(db),
		repositories.NewAirlineRepository(db),
		common.NewCacheService(60, 120),
	)
	feed.now = func() time.Time { return now }
	ctx := context.Background()

	resp, err := feed.Schedule(ctx, "6E")
	require.NoError(t, err)
	assert.Equal(t, "6E", resp.AirlineCode)
	// All three seeded flights, the cancelled one included with its status.
	require.Len(t, resp.Flights, 3)
	for i := 1; i < len(resp.Flights); i++ {
		assert.False(t, resp.Flights[i].DepartureTime.Before(resp.Flights[i-1].DepartureTime),
			"feed must be ordered by departure")
	}

	// Deterministic: a second call (served from cache) is identical.
	again, err := feed.Schedule(ctx, "6E")
	require.NoError(t, err)
	assert.Equal(t, resp.Flights, again.Flights)

	_, err = feed.Schedule(ctx, "ZZ")
	require.Error(t, err)
	assert.Equal(t, constants.KindNotFound, common.KindOf(err))
}

func dtosFlightDelay(status string, delayMinutes int, reason *string) dtos.FlightOpsUpdateRequest {
	return dtos.FlightOpsUpdateRequest{
		Status:       status,
		DelayMinutes: delayMinutes,
		DelayReason:  reason,
	}
}
