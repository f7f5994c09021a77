package repository

import (
	"context"

	"gorm.io/gorm"

	"retaildash/internal/model"
)

// LocationRepository defines store location persistence operations.
type LocationRepository interface {
	Create(ctx context.Context, location *model.Location) error
	List(ctx context.Context) ([]model.Location, error)
}

type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository builds a GORM-backed repository.
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, location *model.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

func (r *locationRepository) List(ctx context.Context) ([]model.Location, error) {
	var locations []model.Location
	if err := r.db.WithContext(ctx).Order("name").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}
