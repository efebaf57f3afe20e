package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openshelf/openshelf/models"
)

// currentUser pulls the authenticated user set by the auth middleware out
// of the request context, answering 401 on the caller's behalf when absent.
func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user in context"})
		return models.User{}, false
	}
	return user, true
}
