package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/openshelf/openshelf/controllers"
	"github.com/openshelf/openshelf/middleware"
)

// initUserRoutes initializes all member-facing routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes (no authentication required)
	router.POST("/register", controllers.RegisterUser)
	router.POST("/login", controllers.LoginUser)
	router.POST("/logout", controllers.LogoutUser)

	// Catalog browsing requires login, matching the rest of the app
	browse := router.Group("")
	browse.Use(middleware.AuthMiddleware())
	{
		browse.GET("/dashboard", controllers.GetDashboard)
		browse.GET("/books", controllers.GetBooks)
		browse.GET("/books/:id", controllers.GetBookDetails)
		browse.GET("/books/:id/reviews", controllers.GetBookReviews)
	}

	// Protected routes (require authentication)
	protected := router.Group("/user")
	protected.Use(middleware.AuthMiddleware())
	{
		// Borrowing ledger
		protected.POST("/borrow/:bookId", controllers.BorrowBook)
		protected.POST("/return/:borrowingId", controllers.ReturnBook)
		protected.GET("/borrowings", controllers.GetMyBorrowings)
		protected.GET("/borrowings/overdue", controllers.GetOverdueBorrowings)

		// Wishlist operations
		protected.POST("/wishlist/add", controllers.AddToWishlist)
		protected.GET("/wishlist", controllers.GetWishlist)
		protected.DELETE("/wishlist/remove", controllers.RemoveFromWishlist)

		// Reviews
		protected.POST("/books/:id/review", controllers.SubmitReview)
	}
}
