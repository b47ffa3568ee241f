package repositories

import (
	"context"

	"skylane/concourse/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// UserRepository handles user table operations
type UserRepository struct {
	db *gormlib.DB
}

func NewUserRepository(db *gormlib.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*gorm.User, error) {
	var user gorm.User

	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error

	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*gorm.User, error) {
	var user gorm.User

	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) Insert(ctx context.Context, user *gorm.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}
