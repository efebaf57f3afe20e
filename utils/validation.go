package utils

import (
	"fmt"
	"regexp"
	"time"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	isbnRegex     = regexp.MustCompile(`^[0-9]{10}([0-9]{3})?$`)
	hasLetter     = regexp.MustCompile(`[a-zA-Z]`)
	hasNumber     = regexp.MustCompile(`[0-9]`)
)

// ValidateUsername checks if the username meets the requirements
func ValidateUsername(username string) (bool, string) {
	if len(username) < 3 {
		return false, "Username must be at least 3 characters long"
	}
	if len(username) > 20 {
		return false, "Username must not exceed 20 characters"
	}
	if !usernameRegex.MatchString(username) {
		return false, "Username can only contain letters, numbers, and underscores"
	}
	return true, ""
}

// ValidateEmail checks if the email is valid
func ValidateEmail(email string) (bool, string) {
	if !emailRegex.MatchString(email) {
		return false, "Invalid email format. Please enter a valid email address"
	}
	return true, ""
}

// ValidatePassword checks if the password meets the requirements
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters long"
	}
	if !hasLetter.MatchString(password) {
		return false, "Password must contain at least one letter"
	}
	if !hasNumber.MatchString(password) {
		return false, "Password must contain at least one number"
	}
	return true, ""
}

// ValidateISBN checks that the ISBN is a bare 10 or 13 digit identifier
func ValidateISBN(isbn string) (bool, string) {
	if !isbnRegex.MatchString(isbn) {
		return false, "ISBN must be 10 or 13 digits without separators"
	}
	return true, ""
}

// ValidatePublicationYear checks that the year is plausible
func ValidatePublicationYear(year int) (bool, string) {
	current := time.Now().Year()
	if year < 1000 || year > current+1 {
		return false, fmt.Sprintf("Publication year must be between 1000 and %d", current+1)
	}
	return true, ""
}

// ValidateRating checks that a review rating is within the 1-5 scale
func ValidateRating(rating int) (bool, string) {
	if rating < 1 || rating > 5 {
		return false, "Rating must be between 1 and 5"
	}
	return true, ""
}
