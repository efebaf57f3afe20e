package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
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

	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), &gorm.Config{
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

// newTestRouter builds a gin engine with session support. When user is
// non-nil every request carries it in context, standing in for the auth
// middleware.
func newTestRouter(user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("openshelf_session", store))
	if user != nil {
		router.Use(func(c *gin.Context) {
			c.Set("user", *user)
			c.Next()
		})
	}
	return router
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "response was not valid JSON: %s", w.Body.String())
	return body
}

func seedUser(t *testing.T, db *gorm.DB, username string, isAdmin bool) *models.User {
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
		IsAdmin:  isAdmin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedBook(t *testing.T, db *gorm.DB, title, isbn string, quantity int) *models.Book {
	book := &models.Book{
		Title:           title,
		Author:          "Test Author",
		ISBN:            isbn,
		PublicationYear: 2019,
		Quantity:        quantity,
	}
	require.NoError(t, db.Create(book).Error)
	return book
}
