package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"retaildash/internal/cache"
	"retaildash/internal/model"
	"retaildash/internal/repository"
)

const reportCacheTTL = 5 * time.Minute

// Dataset is one series in a chart payload.
type Dataset struct {
	Label string   `json:"label"`
	Data  []string `json:"data"`
}

// ChartReport is the chart-ready shape the dashboard frontend consumes:
// labels down the axis, one dataset per series, raw rows alongside.
type ChartReport struct {
	Labels   []string    `json:"labels"`
	Datasets []Dataset   `json:"datasets"`
	Rows     interface{} `json:"rows"`
}

// ReportService aggregates sales into chart payloads.
type ReportService interface {
	DailySales(ctx context.Context, start, end time.Time) (*ChartReport, error)
	SalesByVendor(ctx context.Context, start, end time.Time) (*ChartReport, error)
	SalesByLocation(ctx context.Context, start, end time.Time) (*ChartReport, error)
	ListVendors(ctx context.Context) ([]model.Vendor, error)
	ListLocations(ctx context.Context) ([]model.Location, error)
}

type reportService struct {
	salesRepo    repository.SalesRepository
	vendorRepo   repository.VendorRepository
	locationRepo repository.LocationRepository
	cache        *cache.Client
}

// NewReportService builds a ReportService with repositories and cache.
func NewReportService(
	salesRepo repository.SalesRepository,
	vendorRepo repository.VendorRepository,
	locationRepo repository.LocationRepository,
	cache *cache.Client,
) ReportService {
	return &reportService{
		salesRepo:    salesRepo,
		vendorRepo:   vendorRepo,
		locationRepo: locationRepo,
		cache:        cache,
	}
}

func reportCacheKey(kind string, start, end time.Time) string {
	return fmt.Sprintf("report:%s:%s:%s", kind, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

func (s *reportService) DailySales(ctx context.Context, start, end time.Time) (*ChartReport, error) {
	key := reportCacheKey("daily", start, end)
	var cached ChartReport
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	rows, err := s.salesRepo.DailyTotals(ctx, start, end)
	if err != nil {
		return nil, err
	}

	report := &ChartReport{
		Labels: make([]string, 0, len(rows)),
		Datasets: []Dataset{
			{Label: "Revenue", Data: make([]string, 0, len(rows))},
			{Label: "Orders", Data: make([]string, 0, len(rows))},
		},
		Rows: rows,
	}
	for _, row := range rows {
		report.Labels = append(report.Labels, row.Day)
		report.Datasets[0].Data = append(report.Datasets[0].Data, row.Revenue.StringFixed(2))
		report.Datasets[1].Data = append(report.Datasets[1].Data, strconv.FormatInt(row.Orders, 10))
	}

	s.cache.SetJSON(ctx, key, report, reportCacheTTL)
	return report, nil
}

func (s *reportService) SalesByVendor(ctx context.Context, start, end time.Time) (*ChartReport, error) {
	return s.groupedReport(ctx, "vendor", start, end, s.salesRepo.TotalsByVendor)
}

func (s *reportService) SalesByLocation(ctx context.Context, start, end time.Time) (*ChartReport, error) {
	return s.groupedReport(ctx, "location", start, end, s.salesRepo.TotalsByLocation)
}

func (s *reportService) groupedReport(
	ctx context.Context,
	kind string,
	start, end time.Time,
	fetch func(context.Context, time.Time, time.Time) ([]repository.GroupTotal, error),
) (*ChartReport, error) {
	key := reportCacheKey(kind, start, end)
	var cached ChartReport
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	rows, err := fetch(ctx, start, end)
	if err != nil {
		return nil, err
	}

	report := &ChartReport{
		Labels: make([]string, 0, len(rows)),
		Datasets: []Dataset{
			{Label: "Revenue", Data: make([]string, 0, len(rows))},
		},
		Rows: rows,
	}
	for _, row := range rows {
		report.Labels = append(report.Labels, row.Name)
		report.Datasets[0].Data = append(report.Datasets[0].Data, row.Revenue.StringFixed(2))
	}

	s.cache.SetJSON(ctx, key, report, reportCacheTTL)
	return report, nil
}

func (s *reportService) ListVendors(ctx context.Context) ([]model.Vendor, error) {
	return s.vendorRepo.List(ctx)
}

func (s *reportService) ListLocations(ctx context.Context) ([]model.Location, error) {
	return s.locationRepo.List(ctx)
}
