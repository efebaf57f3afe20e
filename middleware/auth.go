package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/models"
	"github.com/openshelf/openshelf/utils"
)

// AuthMiddleware resolves the calling user from the cookie session or a
// Bearer token and stores the models.User in the request context. Every
// downstream handler reads identity from the context, never from ambient
// state.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := resolveUserID(c)
		if !ok {
			utils.LogError("Authentication failed for %s %s", c.Request.Method, c.Request.URL.Path)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
			c.Abort()
			return
		}

		var user models.User
		if err := config.DB.First(&user, userID).Error; err != nil {
			utils.LogError("User not found: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		c.Set("user", user)
		utils.LogDebug("User %d authenticated", userID)
		c.Next()
	}
}

func resolveUserID(c *gin.Context) (uint, bool) {
	session := sessions.Default(c)
	if v := session.Get("user_id"); v != nil {
		if id, ok := v.(uint); ok {
			return id, true
		}
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return 0, false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	userID, err := utils.ValidateToken(tokenString)
	if err != nil {
		utils.LogError("Invalid token: %v", err)
		return 0, false
	}
	return userID, true
}

// AdminMiddleware requires the authenticated user to be an administrator
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if !exists {
			utils.LogError("User not found in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
			c.Abort()
			return
		}

		userModel, ok := user.(models.User)
		if !ok {
			utils.LogError("Invalid user type in context")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type"})
			c.Abort()
			return
		}

		if !userModel.IsAdmin {
			utils.LogError("Non-admin user attempted admin access: %d", userModel.ID)
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by AuthMiddleware
func CurrentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	return user, ok
}
