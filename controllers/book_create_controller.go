package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/models"
	"github.com/openshelf/openshelf/utils"
)

// CreateBookRequest represents the catalog entry submitted by an admin
type CreateBookRequest struct {
	Title           string `json:"title" binding:"required"`
	Author          string `json:"author" binding:"required"`
	ISBN            string `json:"isbn" binding:"required"`
	PublicationYear int    `json:"publication_year" binding:"required"`
	Quantity        int    `json:"quantity"`
	Description     string `json:"description"`
	ImageURL        string `json:"image_url"`
}

// CreateBook handles adding a book to the catalog
func CreateBook(c *gin.Context) {
	utils.LogInfo("CreateBook called")

	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("CreateBook failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if valid, msg := utils.ValidateISBN(req.ISBN); !valid {
		utils.LogError("CreateBook failed - Invalid ISBN: %s", req.ISBN)
		utils.BadRequest(c, "Invalid ISBN", msg)
		return
	}
	if valid, msg := utils.ValidatePublicationYear(req.PublicationYear); !valid {
		utils.LogError("CreateBook failed - Invalid publication year: %d", req.PublicationYear)
		utils.BadRequest(c, "Invalid publication year", msg)
		return
	}
	if req.Quantity < 0 {
		utils.BadRequest(c, "Invalid quantity", "Quantity cannot be negative")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	var existing models.Book
	if err := config.DB.Where("isbn = ?", req.ISBN).First(&existing).Error; err == nil {
		utils.LogError("CreateBook failed - Duplicate ISBN: %s", req.ISBN)
		utils.Conflict(c, "A book with this ISBN already exists", nil)
		return
	}

	book := models.Book{
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		Quantity:        req.Quantity,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
	}
	if err := config.DB.Create(&book).Error; err != nil {
		utils.LogError("Failed to create book: %v", err)
		utils.InternalServerError(c, "Failed to create book", err.Error())
		return
	}

	utils.LogInfo("Book created successfully: %s (ID: %d)", book.Title, book.ID)
	utils.Created(c, "Book added successfully", book)
}
