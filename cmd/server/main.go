package main

import (
	"log"
	"net/http"

	"retaildash/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"retaildash/internal/auth"
	"retaildash/internal/cache"
	"retaildash/internal/config"
	"retaildash/internal/db"
	"retaildash/internal/handler"
	"retaildash/internal/model"
	"retaildash/internal/repository"
	"retaildash/internal/router"
	"retaildash/internal/service"
)

// @title Retail Dashboard API
// @version 1.0
// @description Internal analytics backend: sales, vendor, and location reports behind a cookie session.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN(), cfg.DBConnLimit)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Vendor{},
		&model.Location{},
		&model.Sale{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	vendorRepo := repository.NewVendorRepository(gormDB)
	locationRepo := repository.NewLocationRepository(gormDB)
	salesRepo := repository.NewSalesRepository(gormDB)

	// Initialize services
	signer := auth.NewSigner(cfg.TokenSecret)
	authService := service.NewAuthService(userRepo, signer)
	reportService := service.NewReportService(salesRepo, vendorRepo, locationRepo, cacheClient)

	// Initialize handlers
	cookieOpts := handler.CookieOptions{
		Secure:        cfg.IsProduction(),
		DebugFallback: cfg.DebugCookie,
	}
	authHandler := handler.NewAuthHandler(authService, cookieOpts)
	userHandler := handler.NewUserHandler(authService)
	reportHandler := handler.NewReportHandler(reportService)

	// Register routes
	router.Register(e, cfg, authService, authHandler, userHandler, reportHandler)

	// Point the served API docs at the externally visible host when one is
	// configured (e.g. behind a compose port mapping or reverse proxy).
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	log.Printf("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
