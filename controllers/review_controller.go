package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/models"
	"github.com/openshelf/openshelf/utils"
)

func buildReviewViews(reviews []models.Review) []gin.H {
	views := make([]gin.H, 0, len(reviews))
	for i := range reviews {
		views = append(views, gin.H{
			"id":         reviews[i].ID,
			"user_id":    reviews[i].UserID,
			"username":   reviews[i].User.Username,
			"rating":     reviews[i].Rating,
			"comment":    reviews[i].Comment,
			"created_at": reviews[i].CreatedAt,
			"updated_at": reviews[i].UpdatedAt,
		})
	}
	return views
}

// SubmitReviewRequest represents a review submission
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// SubmitReview creates the caller's review for a book, or updates it in
// place when one already exists. A user holds at most one review per book.
func SubmitReview(c *gin.Context) {
	utils.LogInfo("SubmitReview called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	book, ok := lookupBook(c, "id")
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("SubmitReview failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if valid, msg := utils.ValidateRating(req.Rating); !valid {
		utils.LogError("SubmitReview failed - Invalid rating %d from user %d", req.Rating, user.ID)
		utils.BadRequest(c, "Invalid rating", msg)
		return
	}

	var review models.Review
	action := "added"
	err := config.DB.Where("user_id = ? AND book_id = ?", user.ID, book.ID).
		First(&review).Error
	if err == nil {
		review.Rating = req.Rating
		review.Comment = req.Comment
		review.UpdatedAt = time.Now()
		action = "updated"
		err = config.DB.Save(&review).Error
	} else {
		review = models.Review{
			UserID:  user.ID,
			BookID:  book.ID,
			Rating:  req.Rating,
			Comment: req.Comment,
		}
		err = config.DB.Create(&review).Error
	}
	if err != nil {
		utils.LogError("Failed to save review for user %d, book %d: %v", user.ID, book.ID, err)
		utils.InternalServerError(c, "Failed to save review", err.Error())
		return
	}

	avgRating, err := utils.AverageRating(book.ID)
	if err != nil {
		utils.LogError("Failed to compute average rating for book %d: %v", book.ID, err)
		utils.InternalServerError(c, "Failed to compute average rating", err.Error())
		return
	}

	utils.LogInfo("Review %s for book %d by user %d", action, book.ID, user.ID)
	utils.Success(c, "Review "+action+" successfully", gin.H{
		"review": gin.H{
			"id":      review.ID,
			"rating":  review.Rating,
			"comment": review.Comment,
		},
		"average_rating": avgRating,
	})
}

// GetBookReviews handles fetching reviews for a book
func GetBookReviews(c *gin.Context) {
	utils.LogInfo("GetBookReviews called")

	book, ok := lookupBook(c, "id")
	if !ok {
		return
	}
	utils.LogDebug("Fetching reviews for book ID: %d", book.ID)

	var reviews []models.Review
	if err := config.DB.Preload("User").
		Where("book_id = ?", book.ID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		utils.LogError("Failed to fetch reviews: %v", err)
		utils.InternalServerError(c, "Failed to fetch reviews", err.Error())
		return
	}

	avgRating, err := utils.AverageRating(book.ID)
	if err != nil {
		utils.LogError("Failed to compute average rating: %v", err)
		utils.InternalServerError(c, "Failed to fetch reviews", err.Error())
		return
	}

	utils.LogInfo("Successfully retrieved %d reviews for book ID: %d", len(reviews), book.ID)
	utils.Success(c, "Reviews retrieved successfully", gin.H{
		"reviews":        buildReviewViews(reviews),
		"average_rating": avgRating,
		"review_count":   len(reviews),
	})
}

// DeleteReview handles an admin deleting a book review
func DeleteReview(c *gin.Context) {
	utils.LogInfo("DeleteReview called")

	reviewID := c.Param("reviewId")
	var review models.Review
	if err := config.DB.First(&review, reviewID).Error; err != nil {
		utils.LogError("Review not found: %v", err)
		utils.NotFound(c, "Review not found")
		return
	}
	utils.LogDebug("Found review to delete for book ID: %d", review.BookID)

	if err := config.DB.Delete(&review).Error; err != nil {
		utils.LogError("Failed to delete review: %v", err)
		utils.InternalServerError(c, "Failed to delete review", err.Error())
		return
	}

	utils.LogInfo("Successfully deleted review ID: %s", reviewID)
	utils.Success(c, "Review deleted successfully", gin.H{"id": review.ID})
}
