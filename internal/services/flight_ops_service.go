package services

import (
	"context"

	"skylane/concourse/internal/common"
	"skylane/concourse/internal/constants"
	"skylane/concourse/internal/db/repositories"
	"skylane/concourse/internal/logging"
	"skylane/concourse/internal/models/dtos"
	gormModels "skylane/concourse/internal/models/gorm"
)

// FlightOpsService covers the staff-facing operational updates: status,
// delay fields, remarks, and gate assignment. Role checks live in the
// middleware; this re-validates the airline binding for staff accounts.
type FlightOpsService struct {
	flights *repositories.FlightRepository
}

func NewFlightOpsService(flights *repositories.FlightRepository) *FlightOpsService {
	return &FlightOpsService{flights: flights}
}

// UpdateStatus applies a staff status update. Airline staff may only
// touch their own airline's flights; admins touch anything.
func (s *FlightOpsService) UpdateStatus(ctx context.Context, flightID int64, req dtos.FlightOpsUpdateRequest, actorRole constants.Role, actorAirline *string) (*gormModels.Flight, error) {
	status := constants.FlightStatus(req.Status)
	if !status.Valid() {
		return nil, common.NewError(constants.KindInvalidArgument, "invalid flight status %q", req.Status)
	}
	if req.DelayMinutes < 0 {
		return nil, common.NewError(constants.KindInvalidArgument, "delay_minutes must be non-negative")
	}

	flight, err := s.flights.FindByID(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if flight == nil {
		return nil, common.NewError(constants.KindNotFound, "flight %d not found", flightID)
	}
	if err := s.authorize(flight, actorRole, actorAirline); err != nil {
		return nil, err
	}

	updated, err := s.flights.UpdateOps(ctx, flightID, status, req.DelayMinutes, req.DelayReason, req.Remarks)
	if err != nil {
		return nil, err
	}

	logging.Info("Flight status updated",
		"flight_id", flightID,
		"flight_number", flight.FlightNumber,
		"status", status.String(),
		"delay_minutes", req.DelayMinutes,
	)
	return updated, nil
}

// AssignGate sets the departure gate (airport authority operation).
func (s *FlightOpsService) AssignGate(ctx context.Context, flightID int64, gate string, actorRole constants.Role) (*gormModels.Flight, error) {
	if gate == "" {
		return nil, common.NewError(constants.KindInvalidArgument, "gate must not be empty")
	}
	if actorRole != constants.RoleAirportAuthority && actorRole != constants.RoleAdmin {
		return nil, common.NewError(constants.KindForbidden, "gate assignment requires airport authority")
	}

	flight, err := s.flights.FindByID(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if flight == nil {
		return nil, common.NewError(constants.KindNotFound, "flight %d not found", flightID)
	}

	updated, err := s.flights.AssignGate(ctx, flightID, gate)
	if err != nil {
		return nil, err
	}

	logging.Info("Gate assigned", "flight_id", flightID, "gate", gate)
	return updated, nil
}

func (s *FlightOpsService) authorize(flight *gormModels.Flight, role constants.Role, airline *string) error {
	switch role {
	case constants.RoleAdmin:
		return nil
	case constants.RoleAirlineStaff:
		if airline != nil && *airline == flight.AirlineCode {
			return nil
		}
		return common.NewError(constants.KindForbidden, "staff account is not bound to airline %s", flight.AirlineCode)
	default:
		return common.NewError(constants.KindForbidden, "flight updates require airline staff")
	}
}
