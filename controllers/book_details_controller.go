package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/models"
	"github.com/openshelf/openshelf/utils"
)

// GetBookDetails retrieves one book with derived availability, its
// reviews, and the caller's relationship to it (own review, wishlist).
func GetBookDetails(c *gin.Context) {
	utils.LogInfo("GetBookDetails called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	book, ok := lookupBook(c, "id")
	if !ok {
		return
	}
	utils.LogDebug("Fetching details for book ID: %d", book.ID)

	available, err := utils.BookAvailableCount(book)
	if err != nil {
		utils.LogError("Failed to compute availability for book %d: %v", book.ID, err)
		utils.InternalServerError(c, "Failed to fetch book details", err.Error())
		return
	}

	avgRating, err := utils.AverageRating(book.ID)
	if err != nil {
		utils.LogError("Failed to compute average rating for book %d: %v", book.ID, err)
		utils.InternalServerError(c, "Failed to fetch book details", err.Error())
		return
	}

	var reviews []models.Review
	if err := config.DB.Preload("User").
		Where("book_id = ?", book.ID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		utils.LogError("Failed to fetch reviews for book %d: %v", book.ID, err)
		utils.InternalServerError(c, "Failed to fetch book details", err.Error())
		return
	}

	var userReview models.Review
	hasReview := config.DB.Where("user_id = ? AND book_id = ?", user.ID, book.ID).
		First(&userReview).Error == nil

	var wishlistEntry models.Wishlist
	inWishlist := config.DB.Where("user_id = ? AND book_id = ?", user.ID, book.ID).
		First(&wishlistEntry).Error == nil

	response := gin.H{
		"book":            book,
		"available_count": available,
		"is_available":    available > 0,
		"average_rating":  avgRating,
		"reviews":         buildReviewViews(reviews),
		"in_wishlist":     inWishlist,
	}
	if hasReview {
		response["user_review"] = gin.H{
			"id":      userReview.ID,
			"rating":  userReview.Rating,
			"comment": userReview.Comment,
		}
	}

	utils.LogInfo("Successfully retrieved details for book ID: %d", book.ID)
	utils.Success(c, "Book details retrieved successfully", response)
}
