package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/utils"
)

// DeleteBook removes a book from the catalog. The delete is permanent;
// the borrowing, wishlist, and review rows referencing the book go with
// it via the FK cascade.
func DeleteBook(c *gin.Context) {
	utils.LogInfo("DeleteBook called")

	book, ok := lookupBook(c, "id")
	if !ok {
		return
	}
	utils.LogDebug("Found book to delete: %s (ID: %d)", book.Title, book.ID)

	if err := config.DB.Unscoped().Delete(book).Error; err != nil {
		utils.LogError("Failed to delete book %d: %v", book.ID, err)
		utils.InternalServerError(c, "Failed to delete book", err.Error())
		return
	}

	utils.LogInfo("Book deleted successfully: %d", book.ID)
	utils.Success(c, "Book deleted successfully", gin.H{"id": book.ID})
}
