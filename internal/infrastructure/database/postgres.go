package database

import (
	"fmt"
	"strings"

	gormadapter "github.com/casbin/gorm-adapter/v3"
	"github.com/shubham23mamgain/bringit/domain"
	"github.com/shubham23mamgain/bringit/internal/infrastructure/repositories"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options selects the driver and connection settings
type Options struct {
	Driver   string // postgres (default) or sqlite
	DSN      string
	LogLevel string // silent, error, warn, info
}

// Open creates a new database connection with production-ready settings
func Open(opts Options) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel(opts.LogLevel)),
		TranslateError: true,
	}

	switch strings.ToLower(opts.Driver) {
	case "", "postgres":
		return gorm.Open(postgres.Open(opts.DSN), config)
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(opts.DSN), config)
		if err != nil {
			return nil, err
		}
		// an in-memory database lives only as long as its connection
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

func logLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// AutoMigrate performs database migration for all required tables
// including the Casbin policy table
func AutoMigrate(db *gorm.DB) error {
	models := []any{
		&repositories.DBUser{},
		&domain.Product{},
		&domain.ProductCategory{},
		&domain.BlogCategory{},
		&domain.Brand{},
		&domain.Coupon{},
		&domain.Blog{},
		&domain.BlogReaction{},
		&domain.Cart{},
		&domain.CartItem{},
		&domain.WishlistItem{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}

	// NewAdapterByDB creates casbin_rule if it doesn't exist
	if _, err := gormadapter.NewAdapterByDB(db); err != nil {
		return fmt.Errorf("failed to initialize Casbin GORM adapter: %w", err)
	}
	return nil
}
