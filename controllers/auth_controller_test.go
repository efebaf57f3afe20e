package controllers

import (
	"net/http"
	"testing"

	"github.com/openshelf/openshelf/models"
	"github.com/openshelf/openshelf/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerPayload() map[string]interface{} {
	return map[string]interface{}{
		"username":         "alice",
		"email":            "alice@example.com",
		"password":         "sup3rsecret",
		"confirm_password": "sup3rsecret",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	router := newTestRouter(nil)
	router.POST("/register", RegisterUser)
	router.POST("/login", LoginUser)

	w := performJSON(t, router, http.MethodPost, "/register", registerPayload())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&user).Error)
	assert.NotEqual(t, "sup3rsecret", user.Password, "password must be stored hashed")
	assert.False(t, user.IsAdmin)

	w = performJSON(t, router, http.MethodPost, "/login",
		map[string]interface{}{"username": "alice", "password": "sup3rsecret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	loggedIn := data["user"].(map[string]interface{})
	assert.Equal(t, "alice", loggedIn["username"])
}

func TestRegisterRejectsBadInput(t *testing.T) {
	_, cleanup := setupTestDB(t)
	defer cleanup()

	router := newTestRouter(nil)
	router.POST("/register", RegisterUser)

	cases := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"short username", func(p map[string]interface{}) { p["username"] = "ab" }},
		{"bad email", func(p map[string]interface{}) { p["email"] = "not-an-email" }},
		{"weak password", func(p map[string]interface{}) { p["password"] = "short"; p["confirm_password"] = "short" }},
		{"password without numbers", func(p map[string]interface{}) { p["password"] = "allletters"; p["confirm_password"] = "allletters" }},
		{"mismatched confirmation", func(p map[string]interface{}) { p["confirm_password"] = "s0methingelse" }},
	}
	for _, tc := range cases {
		payload := registerPayload()
		tc.mutate(payload)
		w := performJSON(t, router, http.MethodPost, "/register", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%s should be rejected", tc.name)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	_, cleanup := setupTestDB(t)
	defer cleanup()

	router := newTestRouter(nil)
	router.POST("/register", RegisterUser)

	w := performJSON(t, router, http.MethodPost, "/register", registerPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	// Same username, different email
	payload := registerPayload()
	payload["email"] = "alice2@example.com"
	w = performJSON(t, router, http.MethodPost, "/register", payload)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Same email, different username
	payload = registerPayload()
	payload["username"] = "alice2"
	w = performJSON(t, router, http.MethodPost, "/register", payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	hashed, err := utils.HashPassword("sup3rsecret")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Username: "alice",
		Email:    "alice@example.com",
		Password: hashed,
	}).Error)

	router := newTestRouter(nil)
	router.POST("/login", LoginUser)

	w := performJSON(t, router, http.MethodPost, "/login",
		map[string]interface{}{"username": "alice", "password": "wr0ngpassword"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performJSON(t, router, http.MethodPost, "/login",
		map[string]interface{}{"username": "nobody", "password": "sup3rsecret"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
