package models

import (
	"time"

	"gorm.io/gorm"
)

// LoanPeriodDays is the fixed loan period applied to every borrowing.
const LoanPeriodDays = 14

// User represents a library member
type User struct {
	gorm.Model
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `json:"-"`
	IsAdmin     bool      `json:"is_admin" gorm:"default:false"`
	LastLoginAt time.Time `json:"last_login_at"`
	GoogleID    string    `gorm:"default:null" json:"-"`

	Borrowings []Borrowing `json:"borrowings,omitempty" gorm:"foreignKey:UserID"`
}

// Book represents a title in the catalog. Quantity is the number of
// physical copies the library owns; availability is always derived from
// the borrowing ledger, never stored.
type Book struct {
	gorm.Model
	Title           string `json:"title" gorm:"not null;index"`
	Author          string `json:"author" gorm:"not null;index"`
	ISBN            string `json:"isbn" gorm:"uniqueIndex;not null"`
	PublicationYear int    `json:"publication_year" gorm:"not null"`
	Quantity        int    `json:"quantity" gorm:"default:1"`
	Description     string `json:"description"`
	ImageURL        string `json:"image_url"`

	Borrowings []Borrowing `json:"-" gorm:"foreignKey:BookID"`
	Reviews    []Review    `json:"reviews,omitempty" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	Wishlists  []Wishlist  `json:"-" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
}

// AvailableCount returns the number of copies not currently on loan,
// given the count of open borrowings for this book. The count never goes
// negative, even if an admin shrinks the stock below the open loans.
func (b *Book) AvailableCount(openBorrowings int) int {
	available := b.Quantity - openBorrowings
	if available < 0 {
		return 0
	}
	return available
}

// Borrowing is one ledger entry: a copy of a book checked out by a user.
// The entry is open while ReturnDate is nil.
type Borrowing struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	UserID     uint       `json:"user_id" gorm:"not null;index"`
	User       User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	BookID     uint       `json:"book_id" gorm:"not null;index"`
	Book       Book       `json:"book,omitempty" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	BorrowDate time.Time  `json:"borrow_date" gorm:"not null"`
	DueDate    time.Time  `json:"due_date" gorm:"not null"`
	ReturnDate *time.Time `json:"return_date"`
}

// IsOpen reports whether the book has not been returned yet.
func (b *Borrowing) IsOpen() bool {
	return b.ReturnDate == nil
}

// IsOverdue reports whether the borrowing is open and past its due date.
func (b *Borrowing) IsOverdue() bool {
	return b.ReturnDate == nil && b.DueDate.Before(time.Now())
}

// DaysUntilDue returns whole days remaining until the due date, never
// negative. Returned borrowings always report 0.
func (b *Borrowing) DaysUntilDue() int {
	if b.ReturnDate != nil {
		return 0
	}
	remaining := int(time.Until(b.DueDate) / (24 * time.Hour))
	if remaining < 0 {
		return 0
	}
	return remaining
}

// DaysOverdue returns whole days past the due date while the borrowing
// is open, else 0.
func (b *Borrowing) DaysOverdue() int {
	if b.ReturnDate != nil || !b.IsOverdue() {
		return 0
	}
	return int(time.Since(b.DueDate) / (24 * time.Hour))
}

// Review is a user's rating of a book, at most one per (user, book) pair.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_reviews_user_book"`
	User      User      `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	BookID    uint      `json:"book_id" gorm:"not null;index;uniqueIndex:idx_reviews_user_book"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
