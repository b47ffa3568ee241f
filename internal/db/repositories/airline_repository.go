package repositories

import (
	"context"

	"skylane/concourse/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// AirlineRepository handles airline table operations
type AirlineRepository struct {
	db *gormlib.DB
}

func NewAirlineRepository(db *gormlib.DB) *AirlineRepository {
	return &AirlineRepository{db: db}
}

// FindByCode finds an airline by 2-char IATA code (case-insensitive)
func (r *AirlineRepository) FindByCode(ctx context.Context, code string) (*gorm.Airline, error) {
	var airline gorm.Airline

	err := r.db.WithContext(ctx).
		Where("UPPER(code) = UPPER(?)", code).
		First(&airline).Error

	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &airline, nil
}

func (r *AirlineRepository) List(ctx context.Context) ([]gorm.Airline, error) {
	var airlines []gorm.Airline
	err := r.db.WithContext(ctx).Order("code").Find(&airlines).Error
	return airlines, err
}

func (r *AirlineRepository) BatchInsert(ctx context.Context, airlines []gorm.Airline) error {
	return r.db.WithContext(ctx).CreateInBatches(airlines, 100).Error
}
