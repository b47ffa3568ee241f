package repositories

import (
	"context"
	"time"

	"skylane/concourse/internal/constants"
	"skylane/concourse/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// FlightRepository serves the read-mostly flight catalog: search scans,
// staff updates, and the external feed projection. Transactional booking
// writes go through the sqlx store instead.
type FlightRepository struct {
	db *gormlib.DB
}

func NewFlightRepository(db *gormlib.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// FindByID loads one flight with its aircraft
func (r *FlightRepository) FindByID(ctx context.Context, id int64) (*gorm.Flight, error) {
	var flight gorm.Flight

	err := r.db.WithContext(ctx).
		Preload("Aircraft").
		First(&flight, id).Error

	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &flight, nil
}

// Search returns non-cancelled flights between two airports, optionally
// restricted to one UTC calendar day. Ordering and pricing happen in the
// search service; this only narrows the candidate set.
func (r *FlightRepository) Search(ctx context.Context, origin, destination string, date *time.Time) ([]gorm.Flight, error) {
	q := r.db.WithContext(ctx).
		Preload("Aircraft").
		Where("origin_code = ? AND destination_code = ?", origin, destination).
		Where("status <> ?", constants.FlightCancelled)

	if date != nil {
		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		q = q.Where("departure_time >= ? AND departure_time < ?", dayStart, dayStart.Add(24*time.Hour))
	}

	var flights []gorm.Flight
	if err := q.Order("departure_time, id").Find(&flights).Error; err != nil {
		return nil, err
	}
	return flights, nil
}

// SeatCountRow is one (flight, tier) availability aggregate.
type SeatCountRow struct {
	FlightID  int64               `gorm:"column:flight_id"`
	Class     constants.CabinTier `gorm:"column:class"`
	Available int                 `gorm:"column:available"`
	Total     int                 `gorm:"column:total"`
}

// SeatCounts aggregates remaining/total seats per tier for the given
// flights. SUM(CASE ...) keeps the query portable to the sqlite test DB.
func (r *FlightRepository) SeatCounts(ctx context.Context, flightIDs []int64) (map[int64]map[constants.CabinTier][2]int, error) {
	if len(flightIDs) == 0 {
		return map[int64]map[constants.CabinTier][2]int{}, nil
	}

	var rows []SeatCountRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT flight_id, class,
		        SUM(CASE WHEN status = 'Available' THEN 1 ELSE 0 END) AS available,
		        COUNT(*) AS total
		 FROM seats WHERE flight_id IN ?
		 GROUP BY flight_id, class`, flightIDs,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]map[constants.CabinTier][2]int)
	for _, row := range rows {
		if counts[row.FlightID] == nil {
			counts[row.FlightID] = make(map[constants.CabinTier][2]int)
		}
		counts[row.FlightID][row.Class] = [2]int{row.Available, row.Total}
	}
	return counts, nil
}

// UpdateOps applies a staff status update. Only the operational fields
// change; schedule and fares are immutable here.
func (r *FlightRepository) UpdateOps(ctx context.Context, id int64, status constants.FlightStatus, delayMinutes int, delayReason, remarks *string) (*gorm.Flight, error) {
	updates := map[string]interface{}{
		"status":        status,
		"delay_minutes": delayMinutes,
		"delay_reason":  delayReason,
		"remarks":       remarks,
	}
	if err := r.db.WithContext(ctx).Model(&gorm.Flight{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// AssignGate sets the departure gate
func (r *FlightRepository) AssignGate(ctx context.Context, id int64, gate string) (*gorm.Flight, error) {
	if err := r.db.WithContext(ctx).Model(&gorm.Flight{}).Where("id = ?", id).Update("gate", gate).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// UpcomingByAirline lists an airline's future schedule, ordered
// deterministically for the feed projection.
func (r *FlightRepository) UpcomingByAirline(ctx context.Context, airlineCode string, after time.Time) ([]gorm.Flight, error) {
	var flights []gorm.Flight
	err := r.db.WithContext(ctx).
		Where("airline_code = ? AND departure_time > ?", airlineCode, after).
		Order("departure_time, flight_number").
		Find(&flights).Error
	return flights, err
}

func (r *FlightRepository) Insert(ctx context.Context, flight *gorm.Flight) error {
	return r.db.WithContext(ctx).Create(flight).Error
}

// BatchInsertSeats stamps out a flight's seat map
func (r *FlightRepository) BatchInsertSeats(ctx context.Context, seats []gorm.Seat) error {
	return r.db.WithContext(ctx).CreateInBatches(seats, 200).Error
}
