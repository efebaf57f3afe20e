package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/utils"
)

// UploadBookCover handles a multipart cover image upload for a book and
// points the book's image URL at the stored file.
func UploadBookCover(c *gin.Context) {
	utils.LogInfo("UploadBookCover called")

	book, ok := lookupBook(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("cover")
	if err != nil {
		utils.LogError("UploadBookCover failed - No file provided: %v", err)
		utils.BadRequest(c, "No cover file provided", "Attach the image as the 'cover' form field")
		return
	}

	path, err := utils.SaveCoverImage(file)
	if err != nil {
		utils.LogError("Failed to save cover for book %d: %v", book.ID, err)
		utils.BadRequest(c, "Invalid cover image", err.Error())
		return
	}

	book.ImageURL = path
	if err := config.DB.Save(book).Error; err != nil {
		utils.LogError("Failed to update book %d with cover path: %v", book.ID, err)
		utils.InternalServerError(c, "Failed to update book", err.Error())
		return
	}

	utils.LogInfo("Cover uploaded for book %d: %s", book.ID, path)
	utils.Success(c, "Cover uploaded successfully", gin.H{
		"book_id":   book.ID,
		"image_url": path,
	})
}
