package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/models"
	"github.com/openshelf/openshelf/utils"
)

// ListUsers gives admins a paginated member listing with loan activity
func ListUsers(c *gin.Context) {
	utils.LogInfo("ListUsers called")

	pagination := utils.NewPagination(c)
	search := c.Query("search")

	query := config.DB.Model(&models.User{})
	if search != "" {
		term := "%" + search + "%"
		query = query.Where("LOWER(username) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", err.Error())
		return
	}
	pagination.SetTotal(total)

	var users []models.User
	if err := query.Order("username ASC").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&users).Error; err != nil {
		utils.LogError("Failed to fetch users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", err.Error())
		return
	}

	items := make([]gin.H, 0, len(users))
	for i := range users {
		var openLoans int64
		if err := config.DB.Model(&models.Borrowing{}).
			Where("user_id = ? AND return_date IS NULL", users[i].ID).
			Count(&openLoans).Error; err != nil {
			utils.LogError("Failed to count open loans for user %d: %v", users[i].ID, err)
			utils.InternalServerError(c, "Failed to fetch users", err.Error())
			return
		}
		var overdueLoans int64
		if err := config.DB.Model(&models.Borrowing{}).
			Where("user_id = ? AND return_date IS NULL AND due_date < CURRENT_TIMESTAMP", users[i].ID).
			Count(&overdueLoans).Error; err != nil {
			utils.LogError("Failed to count overdue loans for user %d: %v", users[i].ID, err)
			utils.InternalServerError(c, "Failed to fetch users", err.Error())
			return
		}
		items = append(items, gin.H{
			"id":            users[i].ID,
			"username":      users[i].Username,
			"email":         users[i].Email,
			"is_admin":      users[i].IsAdmin,
			"last_login_at": users[i].LastLoginAt,
			"created_at":    users[i].CreatedAt,
			"open_loans":    openLoans,
			"overdue_loans": overdueLoans,
		})
	}

	utils.LogInfo("Retrieved %d of %d users (page %d)", len(items), total, pagination.Page)
	utils.SuccessWithPagination(c, "Users retrieved successfully", gin.H{"users": items},
		total, pagination.Page, pagination.Limit)
}
