package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	valid, _ := ValidateUsername("alice_42")
	assert.True(t, valid)

	for _, username := range []string{"ab", "this_username_is_way_too_long", "bad name", "bad-name!"} {
		valid, msg := ValidateUsername(username)
		assert.False(t, valid, "username %q should be rejected", username)
		assert.NotEmpty(t, msg)
	}
}

func TestValidateEmail(t *testing.T) {
	valid, _ := ValidateEmail("alice@example.com")
	assert.True(t, valid)

	for _, email := range []string{"", "plainstring", "missing@tld", "@example.com"} {
		valid, _ := ValidateEmail(email)
		assert.False(t, valid, "email %q should be rejected", email)
	}
}

func TestValidatePassword(t *testing.T) {
	valid, _ := ValidatePassword("sup3rsecret")
	assert.True(t, valid)

	for _, password := range []string{"sh0rt", "allletters", "1234567890"} {
		valid, _ := ValidatePassword(password)
		assert.False(t, valid, "password %q should be rejected", password)
	}
}

func TestValidateISBN(t *testing.T) {
	for _, isbn := range []string{"0441172717", "9780441172719"} {
		valid, _ := ValidateISBN(isbn)
		assert.True(t, valid, "isbn %q should be accepted", isbn)
	}

	for _, isbn := range []string{"", "978-0441172719", "12345", "97804411727190", "abcdefghij"} {
		valid, _ := ValidateISBN(isbn)
		assert.False(t, valid, "isbn %q should be rejected", isbn)
	}
}

func TestValidatePublicationYear(t *testing.T) {
	current := time.Now().Year()

	for _, year := range []int{1000, 1965, current, current + 1} {
		valid, _ := ValidatePublicationYear(year)
		assert.True(t, valid, "year %d should be accepted", year)
	}

	for _, year := range []int{0, 999, current + 2} {
		valid, _ := ValidatePublicationYear(year)
		assert.False(t, valid, "year %d should be rejected", year)
	}
}

func TestValidateRating(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		valid, _ := ValidateRating(rating)
		assert.True(t, valid)
	}

	for _, rating := range []int{0, -3, 6} {
		valid, _ := ValidateRating(rating)
		assert.False(t, valid, "rating %d should be rejected", rating)
	}
}
