package database

import (
	"fmt"

	"github.com/jkorir-dev/duka-pos/internal/config"
	"github.com/jkorir-dev/duka-pos/internal/domain/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens the register's sqlite database. The file lives in the
// working directory; it is created on first use.
func NewSQLiteDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Path, err)
	}

	// sqlite handles one writer at a time; a single connection avoids
	// SQLITE_BUSY under the concurrent HTTP server.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// AutoMigrate runs GORM auto-migration for all persisted aggregates
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		// Catalog aggregate
		&entity.CatalogItem{},
		&entity.Barcode{},

		// User directory aggregate
		&entity.User{},

		// Bill history aggregate
		&entity.Receipt{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
