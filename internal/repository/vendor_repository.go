package repository

import (
	"context"

	"gorm.io/gorm"

	"retaildash/internal/model"
)

// VendorRepository defines vendor persistence operations.
type VendorRepository interface {
	Create(ctx context.Context, vendor *model.Vendor) error
	List(ctx context.Context) ([]model.Vendor, error)
}

type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository builds a GORM-backed repository.
func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

func (r *vendorRepository) Create(ctx context.Context, vendor *model.Vendor) error {
	return r.db.WithContext(ctx).Create(vendor).Error
}

func (r *vendorRepository) List(ctx context.Context) ([]model.Vendor, error) {
	var vendors []model.Vendor
	if err := r.db.WithContext(ctx).Order("name").Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}
