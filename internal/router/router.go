package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"retaildash/internal/config"
	"retaildash/internal/handler"
	"retaildash/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	reportHandler *handler.ReportHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Bound every request context so a saturated connection pool fails the
	// request instead of waiting indefinitely for a free connection. The
	// deadline propagates through gorm's WithContext into database/sql's
	// connection acquisition.
	if cfg.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeout(cfg.RequestTimeout))
	}

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes. /auth/check validates the cookie itself so it can
	// answer 401 with a body instead of being rejected by the guard.
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/check", authHandler.Check)

	// Session-guarded routes
	cookieOpts := handler.CookieOptions{
		Secure:        cfg.IsProduction(),
		DebugFallback: cfg.DebugCookie,
	}
	secured := api.Group("", handler.SessionMiddleware(authService, cookieOpts))

	secured.POST("/users/reset-password", userHandler.ResetPassword)

	secured.GET("/reports/sales/daily", reportHandler.DailySales)
	secured.GET("/reports/sales/vendors", reportHandler.SalesByVendor)
	secured.GET("/reports/sales/locations", reportHandler.SalesByLocation)
	secured.GET("/vendors", reportHandler.ListVendors)
	secured.GET("/locations", reportHandler.ListLocations)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
