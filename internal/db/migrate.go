package db

import (
	"fmt"

	gormlib "gorm.io/gorm"

	"skylane/concourse/internal/models/gorm"
)

// Migrate creates or updates the schema. The PNR partial unique index
// cannot be expressed as a gorm tag (uniqueness only over not-Expired
// bookings), so it is raw DDL.
func Migrate(db *gormlib.DB) error {
	err := db.AutoMigrate(
		&gorm.Airport{},
		&gorm.Airline{},
		&gorm.Aircraft{},
		&gorm.AircraftSeatTemplate{},
		&gorm.Flight{},
		&gorm.Seat{},
		&gorm.User{},
		&gorm.Booking{},
		&gorm.Ticket{},
		&gorm.Payment{},
		&gorm.FareHistorySample{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_pnr_active
		 ON bookings (pnr) WHERE status <> 'Expired' AND pnr IS NOT NULL`,
	).Error; err != nil {
		return fmt.Errorf("create pnr partial index: %w", err)
	}

	return nil
}
