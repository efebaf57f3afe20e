package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/openshelf/openshelf/controllers"
	"github.com/openshelf/openshelf/middleware"
)

// initAdminRoutes initializes all librarian/admin routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		// Catalog management
		admin.POST("/books", controllers.CreateBook)
		admin.PUT("/books/:id", controllers.UpdateBook)
		admin.DELETE("/books/:id", controllers.DeleteBook)
		admin.POST("/books/:id/cover", controllers.UploadBookCover)

		// Review moderation
		admin.DELETE("/reviews/:reviewId", controllers.DeleteReview)

		// Member overview
		admin.GET("/users", controllers.ListUsers)

		// Borrowing reports
		admin.GET("/reports/borrowings/excel", controllers.DownloadBorrowingReportExcel)
		admin.GET("/reports/borrowings/pdf", controllers.DownloadBorrowingReportPDF)

		// Overdue reminder mail
		admin.POST("/reminders/overdue", controllers.SendOverdueReminders)
	}
}
