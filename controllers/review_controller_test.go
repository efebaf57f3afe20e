package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/openshelf/openshelf/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitReviewUpsert(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	user := seedUser(t, db, "alice", false)
	book := seedBook(t, db, "Dune", "9780441172719", 1)

	router := newTestRouter(user)
	router.POST("/books/:id/review", SubmitReview)

	// First submission creates the review
	w := performJSON(t, router, http.MethodPost, fmt.Sprintf("/books/%d/review", book.ID),
		map[string]interface{}{"rating": 4, "comment": "Great read"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Contains(t, body["message"], "added")

	// Second submission updates it in place instead of adding another row
	w = performJSON(t, router, http.MethodPost, fmt.Sprintf("/books/%d/review", book.ID),
		map[string]interface{}{"rating": 2, "comment": "On reflection, not so great"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body = decodeBody(t, w)
	assert.Contains(t, body["message"], "updated")
	data := body["data"].(map[string]interface{})
	assert.InDelta(t, 2.0, data["average_rating"], 0.001, "average reflects only the latest value")

	var count int64
	require.NoError(t, db.Model(&models.Review{}).Where("user_id = ? AND book_id = ?", user.ID, book.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "one review per user per book")

	var stored models.Review
	require.NoError(t, db.Where("user_id = ? AND book_id = ?", user.ID, book.ID).First(&stored).Error)
	assert.Equal(t, 2, stored.Rating)
	assert.Equal(t, "On reflection, not so great", stored.Comment)
}

func TestSubmitReviewRatingOutOfRange(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	user := seedUser(t, db, "alice", false)
	book := seedBook(t, db, "Dune", "9780441172719", 1)

	router := newTestRouter(user)
	router.POST("/books/:id/review", SubmitReview)

	for _, rating := range []int{-1, 6, 42} {
		w := performJSON(t, router, http.MethodPost, fmt.Sprintf("/books/%d/review", book.ID),
			map[string]interface{}{"rating": rating})
		assert.Equal(t, http.StatusBadRequest, w.Code, "rating %d should be rejected", rating)
	}

	var count int64
	require.NoError(t, db.Model(&models.Review{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestGetBookReviewsAverage(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	alice := seedUser(t, db, "alice", false)
	bob := seedUser(t, db, "bob", false)
	book := seedBook(t, db, "Dune", "9780441172719", 1)

	require.NoError(t, db.Create(&models.Review{UserID: alice.ID, BookID: book.ID, Rating: 4}).Error)
	require.NoError(t, db.Create(&models.Review{UserID: bob.ID, BookID: book.ID, Rating: 5}).Error)

	router := newTestRouter(nil)
	router.GET("/books/:id/reviews", GetBookReviews)

	w := performJSON(t, router, http.MethodGet, fmt.Sprintf("/books/%d/reviews", book.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 4.5, data["average_rating"], 0.001)
	assert.EqualValues(t, 2, data["review_count"])
	reviews, ok := data["reviews"].([]interface{})
	require.True(t, ok)
	assert.Len(t, reviews, 2)
}

func TestGetBookReviewsUnknownBook(t *testing.T) {
	_, cleanup := setupTestDB(t)
	defer cleanup()

	router := newTestRouter(nil)
	router.GET("/books/:id/reviews", GetBookReviews)

	w := performJSON(t, router, http.MethodGet, "/books/999/reviews", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteReview(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	alice := seedUser(t, db, "alice", false)
	admin := seedUser(t, db, "admin", true)
	book := seedBook(t, db, "Dune", "9780441172719", 1)

	review := models.Review{UserID: alice.ID, BookID: book.ID, Rating: 1, Comment: "spam"}
	require.NoError(t, db.Create(&review).Error)

	router := newTestRouter(admin)
	router.DELETE("/admin/reviews/:reviewId", DeleteReview)

	w := performJSON(t, router, http.MethodDelete, fmt.Sprintf("/admin/reviews/%d", review.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	require.NoError(t, db.Model(&models.Review{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// Deleting it again is a 404
	w = performJSON(t, router, http.MethodDelete, fmt.Sprintf("/admin/reviews/%d", review.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
