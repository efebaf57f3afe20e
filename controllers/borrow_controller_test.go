package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/openshelf/openshelf/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBorrowEndpointHappyPath(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	user := seedUser(t, db, "alice", false)
	book := seedBook(t, db, "Snow Crash", "9780553380958", 1)

	router := newTestRouter(user)
	router.POST("/user/borrow/:bookId", BorrowBook)

	w := performJSON(t, router, http.MethodPost, fmt.Sprintf("/user/borrow/%d", book.ID), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.EqualValues(t, book.ID, data["book_id"])
	assert.NotEmpty(t, data["due_date"])

	var borrowing models.Borrowing
	require.NoError(t, db.Where("user_id = ? AND book_id = ?", user.ID, book.ID).First(&borrowing).Error)
	assert.Nil(t, borrowing.ReturnDate)
}

func TestBorrowEndpointCapacityConflict(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	alice := seedUser(t, db, "alice", false)
	bob := seedUser(t, db, "bob", false)
	book := seedBook(t, db, "Snow Crash", "9780553380958", 1)

	aliceRouter := newTestRouter(alice)
	aliceRouter.POST("/user/borrow/:bookId", BorrowBook)
	w := performJSON(t, aliceRouter, http.MethodPost, fmt.Sprintf("/user/borrow/%d", book.ID), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	bobRouter := newTestRouter(bob)
	bobRouter.POST("/user/borrow/:bookId", BorrowBook)
	w = performJSON(t, bobRouter, http.MethodPost, fmt.Sprintf("/user/borrow/%d", book.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "No copies available", body["message"])
}

func TestBorrowEndpointInvalidID(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	user := seedUser(t, db, "alice", false)

	router := newTestRouter(user)
	router.POST("/user/borrow/:bookId", BorrowBook)

	w := performJSON(t, router, http.MethodPost, "/user/borrow/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(t, router, http.MethodPost, "/user/borrow/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReturnEndpointMapsLedgerErrors(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	alice := seedUser(t, db, "alice", false)
	bob := seedUser(t, db, "bob", false)
	book := seedBook(t, db, "Snow Crash", "9780553380958", 1)

	var borrowing models.Borrowing
	aliceRouter := newTestRouter(alice)
	aliceRouter.POST("/user/borrow/:bookId", BorrowBook)
	aliceRouter.POST("/user/return/:borrowingId", ReturnBook)
	w := performJSON(t, aliceRouter, http.MethodPost, fmt.Sprintf("/user/borrow/%d", book.ID), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, db.Where("user_id = ?", alice.ID).First(&borrowing).Error)

	// Someone else's loan → 403
	bobRouter := newTestRouter(bob)
	bobRouter.POST("/user/return/:borrowingId", ReturnBook)
	w = performJSON(t, bobRouter, http.MethodPost, fmt.Sprintf("/user/return/%d", borrowing.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Own loan → 200
	w = performJSON(t, aliceRouter, http.MethodPost, fmt.Sprintf("/user/return/%d", borrowing.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Second return → 409
	w = performJSON(t, aliceRouter, http.MethodPost, fmt.Sprintf("/user/return/%d", borrowing.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Unknown borrowing → 404
	w = performJSON(t, aliceRouter, http.MethodPost, "/user/return/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
