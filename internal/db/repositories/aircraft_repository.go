package repositories

import (
	"context"

	"skylane/concourse/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// AircraftRepository handles aircraft and seat template operations
type AircraftRepository struct {
	db *gormlib.DB
}

func NewAircraftRepository(db *gormlib.DB) *AircraftRepository {
	return &AircraftRepository{db: db}
}

// FindByID loads an aircraft together with its cabin layout
func (r *AircraftRepository) FindByID(ctx context.Context, id int64) (*gorm.Aircraft, error) {
	var aircraft gorm.Aircraft

	err := r.db.WithContext(ctx).
		Preload("SeatTemplates").
		First(&aircraft, id).Error

	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &aircraft, nil
}

func (r *AircraftRepository) Insert(ctx context.Context, aircraft *gorm.Aircraft) error {
	return r.db.WithContext(ctx).Create(aircraft).Error
}

func (r *AircraftRepository) BatchInsertTemplates(ctx context.Context, templates []gorm.AircraftSeatTemplate) error {
	return r.db.WithContext(ctx).CreateInBatches(templates, 200).Error
}
