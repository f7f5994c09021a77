package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"retaildash/internal/errors"
	"retaildash/internal/service"
)

const (
	dateLayout         = "2006-01-02"
	defaultReportRange = 30 * 24 * time.Hour
)

// ReportHandler handles dashboard report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// reportRange parses optional start/end query params (YYYY-MM-DD) with a
// default window of the last 30 days. end is exclusive at the following
// midnight so a same-day query still includes today's sales.
func reportRange(c echo.Context) (start, end time.Time, err error) {
	now := time.Now()
	end = now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	start = end.Add(-defaultReportRange)

	if v := c.QueryParam("start"); v != "" {
		start, err = time.Parse(dateLayout, v)
		if err != nil {
			return time.Time{}, time.Time{}, errors.ErrValidation
		}
	}
	if v := c.QueryParam("end"); v != "" {
		end, err = time.Parse(dateLayout, v)
		if err != nil {
			return time.Time{}, time.Time{}, errors.ErrValidation
		}
		end = end.Add(24 * time.Hour)
	}
	return start, end, nil
}

func (h *ReportHandler) respond(c echo.Context, report *service.ChartReport, err error) error {
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, report)
}

// DailySales godoc
// @Summary Revenue and order count per day
// @Tags reports
// @Produce json
// @Param start query string false "Start date (YYYY-MM-DD)"
// @Param end query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} service.ChartReport
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /reports/sales/daily [get]
func (h *ReportHandler) DailySales(c echo.Context) error {
	start, end, err := reportRange(c)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	report, err := h.reportService.DailySales(c.Request().Context(), start, end)
	return h.respond(c, report, err)
}

// SalesByVendor godoc
// @Summary Revenue grouped by vendor
// @Tags reports
// @Produce json
// @Param start query string false "Start date (YYYY-MM-DD)"
// @Param end query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} service.ChartReport
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /reports/sales/vendors [get]
func (h *ReportHandler) SalesByVendor(c echo.Context) error {
	start, end, err := reportRange(c)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	report, err := h.reportService.SalesByVendor(c.Request().Context(), start, end)
	return h.respond(c, report, err)
}

// SalesByLocation godoc
// @Summary Revenue grouped by store location
// @Tags reports
// @Produce json
// @Param start query string false "Start date (YYYY-MM-DD)"
// @Param end query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} service.ChartReport
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /reports/sales/locations [get]
func (h *ReportHandler) SalesByLocation(c echo.Context) error {
	start, end, err := reportRange(c)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	report, err := h.reportService.SalesByLocation(c.Request().Context(), start, end)
	return h.respond(c, report, err)
}

// ListVendors godoc
// @Summary List vendors
// @Tags reports
// @Produce json
// @Success 200 {array} model.Vendor
// @Failure 401 {object} errors.ErrorResponse
// @Router /vendors [get]
func (h *ReportHandler) ListVendors(c echo.Context) error {
	vendors, err := h.reportService.ListVendors(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, vendors)
}

// ListLocations godoc
// @Summary List store locations
// @Tags reports
// @Produce json
// @Success 200 {array} model.Location
// @Failure 401 {object} errors.ErrorResponse
// @Router /locations [get]
func (h *ReportHandler) ListLocations(c echo.Context) error {
	locations, err := h.reportService.ListLocations(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, locations)
}
