package controllers

import (
	"net/http"
	"testing"

	"github.com/openshelf/openshelf/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistAddAndGet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	user := seedUser(t, db, "alice", false)
	book := seedBook(t, db, "Neuromancer", "9780441569595", 3)

	router := newTestRouter(user)
	router.POST("/wishlist/add", AddToWishlist)
	router.GET("/wishlist", GetWishlist)

	w := performJSON(t, router, http.MethodPost, "/wishlist/add",
		map[string]interface{}{"book_id": book.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = performJSON(t, router, http.MethodGet, "/wishlist", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	items, ok := data["wishlist"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)

	item := items[0].(map[string]interface{})
	assert.Equal(t, "Neuromancer", item["title"])
	assert.EqualValues(t, 3, item["available_count"])
	assert.Equal(t, true, item["is_available"])
}

func TestWishlistAddDuplicate(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	user := seedUser(t, db, "alice", false)
	book := seedBook(t, db, "Neuromancer", "9780441569595", 1)

	router := newTestRouter(user)
	router.POST("/wishlist/add", AddToWishlist)

	w := performJSON(t, router, http.MethodPost, "/wishlist/add",
		map[string]interface{}{"book_id": book.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(t, router, http.MethodPost, "/wishlist/add",
		map[string]interface{}{"book_id": book.ID})
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Wishlist{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestWishlistAddUnknownBook(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	user := seedUser(t, db, "alice", false)

	router := newTestRouter(user)
	router.POST("/wishlist/add", AddToWishlist)

	w := performJSON(t, router, http.MethodPost, "/wishlist/add",
		map[string]interface{}{"book_id": 999})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWishlistRemoveOnlyOwnEntries(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	alice := seedUser(t, db, "alice", false)
	bob := seedUser(t, db, "bob", false)
	book := seedBook(t, db, "Neuromancer", "9780441569595", 1)

	entry := models.Wishlist{UserID: alice.ID, BookID: book.ID}
	require.NoError(t, db.Create(&entry).Error)

	// Bob cannot remove Alice's entry
	router := newTestRouter(bob)
	router.DELETE("/wishlist/remove", RemoveFromWishlist)
	w := performJSON(t, router, http.MethodDelete, "/wishlist/remove",
		map[string]interface{}{"wishlist_id": entry.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Alice can
	router = newTestRouter(alice)
	router.DELETE("/wishlist/remove", RemoveFromWishlist)
	w = performJSON(t, router, http.MethodDelete, "/wishlist/remove",
		map[string]interface{}{"wishlist_id": entry.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	require.NoError(t, db.Model(&models.Wishlist{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
