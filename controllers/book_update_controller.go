package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/models"
	"github.com/openshelf/openshelf/utils"
)

// UpdateBookRequest carries the fields an admin may change; nil pointers
// leave the stored value untouched.
type UpdateBookRequest struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	ISBN            *string `json:"isbn"`
	PublicationYear *int    `json:"publication_year"`
	Quantity        *int    `json:"quantity"`
	Description     *string `json:"description"`
	ImageURL        *string `json:"image_url"`
}

// UpdateBook handles editing a catalog entry
func UpdateBook(c *gin.Context) {
	utils.LogInfo("UpdateBook called")

	book, ok := lookupBook(c, "id")
	if !ok {
		return
	}

	var req UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("UpdateBook failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.ISBN != nil {
		if valid, msg := utils.ValidateISBN(*req.ISBN); !valid {
			utils.BadRequest(c, "Invalid ISBN", msg)
			return
		}
		var existing models.Book
		if err := config.DB.Where("isbn = ? AND id <> ?", *req.ISBN, book.ID).
			First(&existing).Error; err == nil {
			utils.Conflict(c, "A book with this ISBN already exists", nil)
			return
		}
		book.ISBN = *req.ISBN
	}
	if req.PublicationYear != nil {
		if valid, msg := utils.ValidatePublicationYear(*req.PublicationYear); !valid {
			utils.BadRequest(c, "Invalid publication year", msg)
			return
		}
		book.PublicationYear = *req.PublicationYear
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			utils.BadRequest(c, "Invalid quantity", "Quantity cannot be negative")
			return
		}
		// Quantity may shrink below the current open-loan count; the
		// ledger keeps availability at zero until copies come back.
		book.Quantity = *req.Quantity
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.ImageURL != nil {
		book.ImageURL = *req.ImageURL
	}

	if err := config.DB.Save(book).Error; err != nil {
		utils.LogError("Failed to update book %d: %v", book.ID, err)
		utils.InternalServerError(c, "Failed to update book", err.Error())
		return
	}

	utils.LogInfo("Book updated successfully: %d", book.ID)
	utils.Success(c, "Book updated successfully", book)
}
