package utils

import (
	"fmt"
	"os"
	"testing"

	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a throwaway SQLite database, migrates the schema and
// points config.DB at it. The returned cleanup closes the connection and
// removes the database file.
func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	path := fmt.Sprintf("./test_%s.db", t.Name())
	dsn := path + "?_busy_timeout=5000&_txlock=immediate"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.Borrowing{},
		&models.Wishlist{},
		&models.Review{},
	)
	require.NoError(t, err, "Failed to migrate test database")

	config.DB = db

	cleanup := func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
		os.Remove(path)
		config.DB = nil
	}
	return db, cleanup
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestBook(t *testing.T, db *gorm.DB, title, isbn string, quantity int) *models.Book {
	book := &models.Book{
		Title:           title,
		Author:          "Test Author",
		ISBN:            isbn,
		PublicationYear: 2020,
		Quantity:        quantity,
	}
	require.NoError(t, db.Create(book).Error)
	return book
}
