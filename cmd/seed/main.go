package main

import (
	"context"
	goerrors "errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"retaildash/internal/config"
	"retaildash/internal/db"
	"retaildash/internal/model"
	"retaildash/internal/repository"
)

const (
	seedDays         = 60
	maxSalesPerDay   = 8
	adminDefaultName = "admin"
)

var seedVendors = []model.Vendor{
	{Name: "Acme Beverages", ContactEmail: "orders@acmebev.example"},
	{Name: "Harbor Foods", ContactEmail: "sales@harborfoods.example"},
	{Name: "Northline Apparel", ContactEmail: "contact@northline.example"},
	{Name: "Pioneer Hardware", ContactEmail: "supply@pioneerhw.example"},
}

var seedLocations = []model.Location{
	{Name: "Downtown", City: "Portland"},
	{Name: "Eastside", City: "Portland"},
	{Name: "Riverfront", City: "Salem"},
}

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN(), cfg.DBConnLimit)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Vendor{},
		&model.Location{},
		&model.Sale{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	vendorRepo := repository.NewVendorRepository(gormDB)
	locationRepo := repository.NewLocationRepository(gormDB)
	salesRepo := repository.NewSalesRepository(gormDB)

	if err := seedAdmin(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	vendors, err := seedReference(ctx, vendorRepo, locationRepo)
	if err != nil {
		log.Fatalf("Failed to seed vendors/locations: %v", err)
	}

	created, err := seedSales(ctx, salesRepo, vendors.vendors, vendors.locations)
	if err != nil {
		log.Fatalf("Failed to seed sales: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Vendors: %d", len(vendors.vendors))
	log.Printf("  - Locations: %d", len(vendors.locations))
	log.Printf("  - Sales rows created: %d", created)
}

// seedAdmin creates the initial admin user unless one already exists. The
// password is development-only; first login should rotate it via
// /users/reset-password.
func seedAdmin(ctx context.Context, repo repository.UserRepository) error {
	if _, err := repo.FindByName(ctx, adminDefaultName); err == nil {
		log.Println("Admin user already present, skipping")
		return nil
	} else if !goerrors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check admin user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin-dev-password"), 10)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if err := repo.Create(ctx, &model.User{
		Name:         adminDefaultName,
		Email:        "admin@retaildash.local",
		PasswordHash: string(hashed),
		IsAdmin:      true,
	}); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	log.Println("Admin user created (name: admin)")
	return nil
}

type referenceData struct {
	vendors   []model.Vendor
	locations []model.Location
}

// seedReference inserts vendors and locations, reusing existing rows on
// repeated runs by listing first.
func seedReference(ctx context.Context, vendorRepo repository.VendorRepository, locationRepo repository.LocationRepository) (*referenceData, error) {
	existing, err := vendorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	if len(existing) == 0 {
		for i := range seedVendors {
			if err := vendorRepo.Create(ctx, &seedVendors[i]); err != nil {
				return nil, fmt.Errorf("create vendor %q: %w", seedVendors[i].Name, err)
			}
		}
		existing = seedVendors
	}

	locations, err := locationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	if len(locations) == 0 {
		for i := range seedLocations {
			if err := locationRepo.Create(ctx, &seedLocations[i]); err != nil {
				return nil, fmt.Errorf("create location %q: %w", seedLocations[i].Name, err)
			}
		}
		locations = seedLocations
	}

	return &referenceData{vendors: existing, locations: locations}, nil
}

// seedSales writes a randomized spread of sales across the last seedDays
// days so the dashboard charts have something to show.
func seedSales(ctx context.Context, repo repository.SalesRepository, vendors []model.Vendor, locations []model.Location) (int, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	created := 0

	for day := 0; day < seedDays; day++ {
		soldDate := time.Now().AddDate(0, 0, -day)
		for n := rng.Intn(maxSalesPerDay) + 1; n > 0; n-- {
			amount := decimal.NewFromFloat(5 + rng.Float64()*195).Round(2)
			sale := model.Sale{
				VendorID:   vendors[rng.Intn(len(vendors))].ID,
				LocationID: locations[rng.Intn(len(locations))].ID,
				Amount:     amount,
				ItemCount:  rng.Intn(5) + 1,
				SoldAt:     soldDate.Add(-time.Duration(rng.Intn(12)) * time.Hour),
			}
			if err := repo.Create(ctx, &sale); err != nil {
				return created, fmt.Errorf("create sale: %w", err)
			}
			created++
		}
	}
	return created, nil
}
