package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Alwanly/service-feed-poller/internal/models"
)

func NewSQLiteDB(path string) (*gorm.DB, error) {
	if path == "" {
		path = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite serialises writers; one connection keeps in-memory databases
	// shared across queries.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func RunMigrations(db *gorm.DB) error {
	tables := []interface{}{
		&models.FeedUpdate{},
		&models.OutboundCall{},
	}
	if err := db.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
