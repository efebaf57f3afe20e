package models

import (
	"time"
)

// Wishlist saves a book for later, unique per (user, book) pair.
type Wishlist struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_wishlists_user_book"`
	BookID    uint      `json:"book_id" gorm:"not null;index;uniqueIndex:idx_wishlists_user_book"`
	Book      Book      `json:"book,omitempty" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}
