package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/models"
	"github.com/openshelf/openshelf/utils"
	"gorm.io/gorm"
)

// BookListItem represents a catalog entry for list views
type BookListItem struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	PublicationYear int    `json:"publication_year"`
	Quantity        int    `json:"quantity"`
	AvailableCount  int    `json:"available_count"`
	IsAvailable     bool   `json:"is_available"`
	ImageURL        string `json:"image_url"`
}

const openBorrowsSubquery = "(SELECT COUNT(*) FROM borrowings WHERE borrowings.book_id = books.id AND borrowings.return_date IS NULL)"

// GetBooks handles browsing the catalog with search, availability
// filtering, and pagination. Availability is always computed from the
// borrowing ledger.
func GetBooks(c *gin.Context) {
	utils.LogInfo("GetBooks called with query params: %v", c.Request.URL.Query())

	pagination := utils.NewPagination(c)
	search := c.Query("search")
	filter := c.DefaultQuery("filter", "all")

	query := config.DB.Model(&models.Book{})

	if search != "" {
		term := "%" + search + "%"
		query = query.Where(
			"LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?) OR isbn LIKE ?",
			term, term, term,
		)
		utils.LogDebug("Filtering books by search term: %s", search)
	}

	switch filter {
	case "available":
		query = query.Where("quantity > " + openBorrowsSubquery)
	case "unavailable":
		query = query.Where("quantity <= " + openBorrowsSubquery)
	case "all":
	default:
		utils.LogError("Invalid filter specified: %s", filter)
		utils.BadRequest(c, "Invalid filter", "Filter must be all, available, or unavailable")
		return
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count books: %v", err)
		utils.InternalServerError(c, "Failed to fetch books", err.Error())
		return
	}
	pagination.SetTotal(total)

	var books []models.Book
	if err := query.Order("title ASC").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&books).Error; err != nil {
		utils.LogError("Failed to fetch books: %v", err)
		utils.InternalServerError(c, "Failed to fetch books", err.Error())
		return
	}

	items, err := buildBookListItems(books)
	if err != nil {
		utils.LogError("Failed to compute availability: %v", err)
		utils.InternalServerError(c, "Failed to fetch books", err.Error())
		return
	}

	utils.LogInfo("Retrieved %d of %d books (page %d)", len(items), total, pagination.Page)
	utils.SuccessWithPagination(c, "Books retrieved successfully", gin.H{
		"books":  items,
		"search": search,
		"filter": filter,
	}, total, pagination.Page, pagination.Limit)
}

func buildBookListItems(books []models.Book) ([]BookListItem, error) {
	items := make([]BookListItem, 0, len(books))
	for i := range books {
		available, err := utils.BookAvailableCount(&books[i])
		if err != nil {
			return nil, err
		}
		items = append(items, BookListItem{
			ID:              books[i].ID,
			Title:           books[i].Title,
			Author:          books[i].Author,
			ISBN:            books[i].ISBN,
			PublicationYear: books[i].PublicationYear,
			Quantity:        books[i].Quantity,
			AvailableCount:  available,
			IsAvailable:     available > 0,
			ImageURL:        books[i].ImageURL,
		})
	}
	return items, nil
}

// GetDashboard returns the landing view for the authenticated user: their
// open loans alongside the currently borrowable part of the catalog.
func GetDashboard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var openLoans []models.Borrowing
	if err := config.DB.Preload("Book").
		Where("user_id = ? AND return_date IS NULL", user.ID).
		Order("due_date ASC").
		Find(&openLoans).Error; err != nil {
		utils.LogError("Failed to fetch open loans for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load dashboard", err.Error())
		return
	}

	var availableBooks []models.Book
	if err := config.DB.Model(&models.Book{}).
		Where("quantity > "+openBorrowsSubquery).
		Order("title ASC").
		Find(&availableBooks).Error; err != nil {
		utils.LogError("Failed to fetch available books: %v", err)
		utils.InternalServerError(c, "Failed to load dashboard", err.Error())
		return
	}

	items, err := buildBookListItems(availableBooks)
	if err != nil {
		utils.InternalServerError(c, "Failed to load dashboard", err.Error())
		return
	}

	utils.Success(c, "Dashboard loaded", gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
		"borrowed_books":  buildBorrowingViews(openLoans),
		"available_books": items,
	})
}

// lookupBook fetches a book by path param, handling the 404 response
func lookupBook(c *gin.Context, param string) (*models.Book, bool) {
	var book models.Book
	if err := config.DB.First(&book, c.Param(param)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Book not found")
		} else {
			utils.LogError("Failed to fetch book: %v", err)
			utils.InternalServerError(c, "Failed to fetch book", err.Error())
		}
		return nil, false
	}
	return &book, true
}
