package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"retaildash/internal/model"
)

// DailyTotal is one day of aggregated revenue.
type DailyTotal struct {
	Day     string          `json:"day"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int64           `json:"orders"`
}

// GroupTotal is aggregated revenue for one vendor or location.
type GroupTotal struct {
	GroupID uint            `json:"id"`
	Name    string          `json:"name"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int64           `json:"orders"`
}

// SalesRepository defines sale persistence and aggregation operations.
type SalesRepository interface {
	Create(ctx context.Context, sale *model.Sale) error
	DailyTotals(ctx context.Context, start, end time.Time) ([]DailyTotal, error)
	TotalsByVendor(ctx context.Context, start, end time.Time) ([]GroupTotal, error)
	TotalsByLocation(ctx context.Context, start, end time.Time) ([]GroupTotal, error)
}

type salesRepository struct {
	db *gorm.DB
}

// NewSalesRepository builds a GORM-backed repository.
func NewSalesRepository(db *gorm.DB) SalesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) Create(ctx context.Context, sale *model.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *salesRepository) DailyTotals(ctx context.Context, start, end time.Time) ([]DailyTotal, error) {
	var rows []DailyTotal
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("DATE(sold_at) AS day, SUM(amount) AS revenue, COUNT(*) AS orders").
		Where("sold_at >= ? AND sold_at < ?", start, end).
		Group("DATE(sold_at)").
		Order("day").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *salesRepository) TotalsByVendor(ctx context.Context, start, end time.Time) ([]GroupTotal, error) {
	var rows []GroupTotal
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("sales.vendor_id AS group_id, vendors.name AS name, SUM(sales.amount) AS revenue, COUNT(*) AS orders").
		Joins("JOIN vendors ON vendors.id = sales.vendor_id").
		Where("sales.sold_at >= ? AND sales.sold_at < ?", start, end).
		Group("sales.vendor_id, vendors.name").
		Order("revenue DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *salesRepository) TotalsByLocation(ctx context.Context, start, end time.Time) ([]GroupTotal, error) {
	var rows []GroupTotal
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("sales.location_id AS group_id, locations.name AS name, SUM(sales.amount) AS revenue, COUNT(*) AS orders").
		Joins("JOIN locations ON locations.id = sales.location_id").
		Where("sales.sold_at >= ? AND sales.sold_at < ?", start, end).
		Group("sales.location_id, locations.name").
		Order("revenue DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
