package utils

import (
	"math"

	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/models"
)

// AverageRating returns the mean rating for a book rounded to one
// decimal, or 0 when the book has no reviews.
func AverageRating(bookID uint) (float64, error) {
	var avg float64
	err := config.DB.Model(&models.Review{}).
		Where("book_id = ?", bookID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return math.Round(avg*10) / 10, nil
}

// ReviewCount returns the number of reviews for a book.
func ReviewCount(bookID uint) (int64, error) {
	var count int64
	err := config.DB.Model(&models.Review{}).
		Where("book_id = ?", bookID).
		Count(&count).Error
	return count, err
}
