package repositories

import (
	"context"

	"skylane/concourse/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// AirportRepository handles airport table operations
type AirportRepository struct {
	db *gormlib.DB
}

// NewAirportRepository creates a new airport repository
func NewAirportRepository(db *gormlib.DB) *AirportRepository {
	return &AirportRepository{db: db}
}

// FindByCode finds an airport by IATA code (case-insensitive)
func (r *AirportRepository) FindByCode(ctx context.Context, code string) (*gorm.Airport, error) {
	var airport gorm.Airport

	err := r.db.WithContext(ctx).
		Where("UPPER(code) = UPPER(?)", code).
		First(&airport).Error

	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &airport, nil
}

// List returns the full airport catalog ordered by code
func (r *AirportRepository) List(ctx context.Context) ([]gorm.Airport, error) {
	var airports []gorm.Airport
	err := r.db.WithContext(ctx).Order("code").Find(&airports).Error
	return airports, err
}

// BatchInsert inserts multiple airports
func (r *AirportRepository) BatchInsert(ctx context.Context, airports []gorm.Airport) error {
	return r.db.WithContext(ctx).
		CreateInBatches(airports, 100).Error
}

// Count returns total number of airports
func (r *AirportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gorm.Airport{}).Count(&count).Error
	return count, err
}
