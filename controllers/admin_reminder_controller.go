package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/models"
	"github.com/openshelf/openshelf/utils"
)

// SendOverdueReminders emails every user who currently holds overdue
// loans. It runs synchronously in the request so the admin sees the
// outcome immediately.
func SendOverdueReminders(c *gin.Context) {
	utils.LogInfo("SendOverdueReminders called")

	var overdue []models.Borrowing
	if err := config.DB.Preload("User").Preload("Book").
		Where("return_date IS NULL AND due_date < CURRENT_TIMESTAMP").
		Order("user_id, due_date ASC").
		Find(&overdue).Error; err != nil {
		utils.LogError("Failed to fetch overdue borrowings: %v", err)
		utils.InternalServerError(c, "Failed to fetch overdue borrowings", err.Error())
		return
	}

	byUser := make(map[uint][]models.Borrowing)
	for i := range overdue {
		byUser[overdue[i].UserID] = append(byUser[overdue[i].UserID], overdue[i])
	}

	sent := 0
	failed := 0
	for userID, loans := range byUser {
		user := loans[0].User
		if err := utils.SendOverdueReminder(&user, loans); err != nil {
			utils.LogError("Failed to send overdue reminder to user %d: %v", userID, err)
			failed++
			continue
		}
		utils.LogInfo("Sent overdue reminder to user %d (%d loans)", userID, len(loans))
		sent++
	}

	utils.Success(c, "Overdue reminders processed", gin.H{
		"users_notified": sent,
		"users_failed":   failed,
		"overdue_loans":  len(overdue),
	})
}
