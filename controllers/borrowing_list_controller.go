package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/models"
	"github.com/openshelf/openshelf/utils"
)

// BorrowingView is a loan with its derived due/overdue numbers
type BorrowingView struct {
	ID             uint        `json:"id"`
	Book           gin.H       `json:"book"`
	BorrowDate     interface{} `json:"borrow_date"`
	DueDate        interface{} `json:"due_date"`
	ReturnDate     interface{} `json:"return_date"`
	IsOverdue      bool        `json:"is_overdue"`
	DaysUntilDue   int         `json:"days_until_due"`
	DaysOverdue    int         `json:"days_overdue"`
	CurrentlyOpen  bool        `json:"currently_open"`
}

func buildBorrowingViews(borrowings []models.Borrowing) []BorrowingView {
	views := make([]BorrowingView, 0, len(borrowings))
	for i := range borrowings {
		b := &borrowings[i]
		views = append(views, BorrowingView{
			ID: b.ID,
			Book: gin.H{
				"id":     b.BookID,
				"title":  b.Book.Title,
				"author": b.Book.Author,
			},
			BorrowDate:    b.BorrowDate,
			DueDate:       b.DueDate,
			ReturnDate:    b.ReturnDate,
			IsOverdue:     b.IsOverdue(),
			DaysUntilDue:  b.DaysUntilDue(),
			DaysOverdue:   b.DaysOverdue(),
			CurrentlyOpen: b.IsOpen(),
		})
	}
	return views
}

// GetMyBorrowings lists the calling user's loans, optionally filtered by
// status=open|returned|overdue. Open loans come first, soonest due first.
func GetMyBorrowings(c *gin.Context) {
	utils.LogInfo("GetMyBorrowings called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	status := c.DefaultQuery("status", "all")
	query := config.DB.Preload("Book").Where("user_id = ?", user.ID)

	switch status {
	case "open":
		query = query.Where("return_date IS NULL")
	case "returned":
		query = query.Where("return_date IS NOT NULL")
	case "overdue":
		query = query.Where("return_date IS NULL AND due_date < CURRENT_TIMESTAMP")
	case "all":
	default:
		utils.LogError("Invalid borrowing status filter: %s", status)
		utils.BadRequest(c, "Invalid status", "Status must be open, returned, overdue, or all")
		return
	}

	var borrowings []models.Borrowing
	if err := query.Order("return_date IS NOT NULL, due_date ASC").
		Find(&borrowings).Error; err != nil {
		utils.LogError("Failed to fetch borrowings for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch borrowings", err.Error())
		return
	}

	utils.LogInfo("Retrieved %d borrowings for user %d", len(borrowings), user.ID)
	utils.Success(c, "Borrowings retrieved successfully", gin.H{
		"borrowings": buildBorrowingViews(borrowings),
		"status":     status,
	})
}

// GetOverdueBorrowings lists the calling user's open loans past their due date
func GetOverdueBorrowings(c *gin.Context) {
	utils.LogInfo("GetOverdueBorrowings called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var borrowings []models.Borrowing
	if err := config.DB.Preload("Book").
		Where("user_id = ? AND return_date IS NULL AND due_date < CURRENT_TIMESTAMP", user.ID).
		Order("due_date ASC").
		Find(&borrowings).Error; err != nil {
		utils.LogError("Failed to fetch overdue borrowings for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch overdue borrowings", err.Error())
		return
	}

	utils.LogInfo("User %d has %d overdue borrowings", user.ID, len(borrowings))
	utils.Success(c, "Overdue borrowings retrieved successfully", gin.H{
		"borrowings": buildBorrowingViews(borrowings),
	})
}
