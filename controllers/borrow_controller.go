package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/openshelf/openshelf/utils"
)

// BorrowBook checks a copy of a book out to the calling user
func BorrowBook(c *gin.Context) {
	utils.LogInfo("BorrowBook called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	bookID, err := strconv.ParseUint(c.Param("bookId"), 10, 32)
	if err != nil {
		utils.LogError("BorrowBook failed - Invalid book ID: %s", c.Param("bookId"))
		utils.BadRequest(c, "Invalid book ID", nil)
		return
	}

	borrowing, err := utils.BorrowBook(user.ID, uint(bookID))
	if err != nil {
		utils.LogError("Borrow failed for user %d, book %d: %v", user.ID, bookID, err)
		utils.AppErrorResponse(c, err)
		return
	}

	utils.LogInfo("User %d borrowed book %d (borrowing %d)", user.ID, bookID, borrowing.ID)
	utils.Created(c, "Book borrowed successfully", gin.H{
		"borrowing_id": borrowing.ID,
		"book_id":      borrowing.BookID,
		"borrow_date":  borrowing.BorrowDate,
		"due_date":     borrowing.DueDate,
	})
}

// ReturnBook closes one of the calling user's open borrowings
func ReturnBook(c *gin.Context) {
	utils.LogInfo("ReturnBook called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	borrowingID, err := strconv.ParseUint(c.Param("borrowingId"), 10, 32)
	if err != nil {
		utils.LogError("ReturnBook failed - Invalid borrowing ID: %s", c.Param("borrowingId"))
		utils.BadRequest(c, "Invalid borrowing ID", nil)
		return
	}

	borrowing, err := utils.ReturnBook(user.ID, uint(borrowingID))
	if err != nil {
		utils.LogError("Return failed for user %d, borrowing %d: %v", user.ID, borrowingID, err)
		utils.AppErrorResponse(c, err)
		return
	}

	utils.LogInfo("User %d returned borrowing %d", user.ID, borrowing.ID)
	utils.Success(c, "Book returned successfully", gin.H{
		"borrowing_id": borrowing.ID,
		"book_id":      borrowing.BookID,
		"return_date":  borrowing.ReturnDate,
	})
}
