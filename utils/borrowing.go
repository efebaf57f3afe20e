package utils

import (
	"errors"
	"time"

	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// The borrowing ledger is the single source of truth for availability:
// a book's available count is its quantity minus its open borrowings,
// recomputed on every decision. Nothing on the book row itself is
// consulted for borrow eligibility.

// OpenBorrowCount returns the number of open borrowings for a book.
func OpenBorrowCount(bookID uint) (int64, error) {
	return openBorrowCount(config.DB, bookID)
}

func openBorrowCount(db *gorm.DB, bookID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Borrowing{}).
		Where("book_id = ? AND return_date IS NULL", bookID).
		Count(&count).Error
	return count, err
}

// BookAvailableCount returns quantity minus open borrowings for a book.
func BookAvailableCount(book *models.Book) (int, error) {
	open, err := OpenBorrowCount(book.ID)
	if err != nil {
		return 0, err
	}
	return book.AvailableCount(int(open)), nil
}

// BorrowBook checks a copy of the book out to the user. The availability
// check runs inside the same transaction as the insert, with the book row
// locked, so two borrowers cannot both take the last copy.
func BorrowBook(userID, bookID uint) (*models.Borrowing, error) {
	var borrowing models.Borrowing

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		locked := tx
		// SQLite has no FOR UPDATE and serializes writers on its own.
		if tx.Dialector.Name() != "sqlite" {
			locked = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var book models.Book
		if err := locked.First(&book, bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError("Book not found", err)
			}
			return err
		}

		open, err := openBorrowCount(tx, bookID)
		if err != nil {
			return err
		}
		if book.AvailableCount(int(open)) <= 0 {
			return ConflictError("No copies available", nil)
		}

		now := time.Now()
		borrowing = models.Borrowing{
			UserID:     userID,
			BookID:     bookID,
			BorrowDate: now,
			DueDate:    now.AddDate(0, 0, models.LoanPeriodDays),
		}
		return tx.Create(&borrowing).Error
	})
	if err != nil {
		return nil, err
	}
	return &borrowing, nil
}

// ReturnBook closes the borrowing identified by borrowingID on behalf of
// userID. Only the borrower may return a loan, and a loan can only be
// returned once; the closing update is guarded on return_date still being
// null so a racing double return loses cleanly.
func ReturnBook(userID, borrowingID uint) (*models.Borrowing, error) {
	var borrowing models.Borrowing
	if err := config.DB.First(&borrowing, borrowingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Borrowing record not found", err)
		}
		return nil, err
	}

	if borrowing.UserID != userID {
		return nil, ForbiddenError("You can only return your own books", nil)
	}
	if borrowing.ReturnDate != nil {
		return nil, ConflictError("Book has already been returned", nil)
	}

	now := time.Now()
	result := config.DB.Model(&models.Borrowing{}).
		Where("id = ? AND return_date IS NULL", borrowingID).
		Update("return_date", now)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ConflictError("Book has already been returned", nil)
	}

	borrowing.ReturnDate = &now
	return &borrowing, nil
}
