// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"fmt"
	"strings"

	gormModels "github.com/alchemorsel/kitchen/internal/infrastructure/persistence/gorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDatabase opens the SQLite database and migrates the schema
func SetupDatabase(dbPath string, gormLogger logger.Interface) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = ":memory:"
	}

	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// every connection to :memory: is a separate database
	if strings.Contains(dbPath, ":memory:") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(gormModels.AllModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
