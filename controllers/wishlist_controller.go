package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/models"
	"github.com/openshelf/openshelf/utils"
)

func buildWishlistItems(userID uint) ([]gin.H, error) {
	var entries []models.Wishlist
	if err := config.DB.Preload("Book").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	items := make([]gin.H, 0, len(entries))
	for i := range entries {
		book := entries[i].Book
		available, err := utils.BookAvailableCount(&book)
		if err != nil {
			return nil, err
		}
		items = append(items, gin.H{
			"id":              entries[i].ID,
			"book_id":         book.ID,
			"title":           book.Title,
			"author":          book.Author,
			"image_url":       book.ImageURL,
			"available_count": available,
			"is_available":    available > 0,
			"added_at":        entries[i].CreatedAt,
		})
	}
	return items, nil
}

// AddToWishlist saves a book to the user's wishlist
func AddToWishlist(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		BookID uint `json:"book_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var book models.Book
	if err := config.DB.First(&book, req.BookID).Error; err != nil {
		utils.LogError("AddToWishlist failed - Book not found: %d", req.BookID)
		utils.NotFound(c, "Book not found")
		return
	}

	var existing models.Wishlist
	if err := config.DB.Where("user_id = ? AND book_id = ?", user.ID, req.BookID).
		First(&existing).Error; err == nil {
		utils.LogInfo("Book %d already in wishlist for user %d", req.BookID, user.ID)
		utils.Conflict(c, "Book already in wishlist", nil)
		return
	}

	entry := models.Wishlist{UserID: user.ID, BookID: req.BookID}
	if err := config.DB.Create(&entry).Error; err != nil {
		// Unique index closes the race between the check and the insert.
		utils.LogError("Failed to add book %d to wishlist for user %d: %v", req.BookID, user.ID, err)
		utils.Conflict(c, "Book already in wishlist", nil)
		return
	}

	items, err := buildWishlistItems(user.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load wishlist", err.Error())
		return
	}

	utils.LogInfo("User %d added book %d to wishlist", user.ID, req.BookID)
	utils.Success(c, "Book added to wishlist successfully", gin.H{"wishlist": items})
}

// GetWishlist retrieves the user's wishlist
func GetWishlist(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := buildWishlistItems(user.ID)
	if err != nil {
		utils.LogError("Failed to load wishlist for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load wishlist", err.Error())
		return
	}

	utils.Success(c, "Wishlist retrieved successfully", gin.H{"wishlist": items})
}

// RemoveFromWishlist deletes one of the user's wishlist entries
func RemoveFromWishlist(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		WishlistID uint `json:"wishlist_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var entry models.Wishlist
	if err := config.DB.Where("id = ? AND user_id = ?", req.WishlistID, user.ID).
		First(&entry).Error; err != nil {
		utils.LogError("RemoveFromWishlist failed - Entry %d not found for user %d", req.WishlistID, user.ID)
		utils.NotFound(c, "Wishlist item not found")
		return
	}

	if err := config.DB.Delete(&entry).Error; err != nil {
		utils.LogError("Failed to remove wishlist entry %d: %v", req.WishlistID, err)
		utils.InternalServerError(c, "Failed to remove from wishlist", err.Error())
		return
	}

	items, err := buildWishlistItems(user.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load wishlist", err.Error())
		return
	}

	utils.LogInfo("User %d removed wishlist entry %d", user.ID, req.WishlistID)
	utils.Success(c, "Book removed from wishlist successfully", gin.H{"wishlist": items})
}
