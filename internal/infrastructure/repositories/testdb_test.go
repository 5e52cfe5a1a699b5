package repositories

import (
	"testing"

	"github.com/shubham23mamgain/bringit/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to connect database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&DBUser{},
		&domain.Product{},
		&domain.Brand{},
		&domain.Blog{},
		&domain.BlogReaction{},
		&domain.Cart{},
		&domain.CartItem{},
		&domain.WishlistItem{},
	)
	require.NoError(t, err, "failed to migrate database")

	return db
}
