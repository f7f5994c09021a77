package db

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQL returns a connected GORM DB instance with a bounded connection
// pool. connLimit caps open connections; a saturated pool surfaces as a
// context deadline error on the request rather than an unbounded wait.
func NewMySQL(dsn string, connLimit int) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access sql pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(connLimit)
	sqlDB.SetMaxIdleConns(connLimit / 2)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
