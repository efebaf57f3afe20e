package controllers

import (
	"os"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/models"
	"github.com/openshelf/openshelf/utils"
)

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// RegisterUser handles user registration
func RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Registration attempt failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", "Please check your input data and ensure all required fields are provided correctly.")
		return
	}

	utils.LogInfo("Registration attempt for email: %s, username: %s", req.Email, req.Username)

	if valid, msg := utils.ValidateUsername(req.Username); !valid {
		utils.LogError("Registration attempt failed - Invalid username: %s - %s", req.Username, msg)
		utils.BadRequest(c, "Invalid username", msg)
		return
	}
	if valid, msg := utils.ValidateEmail(req.Email); !valid {
		utils.LogError("Registration attempt failed - Invalid email: %s - %s", req.Email, msg)
		utils.BadRequest(c, "Invalid email", msg)
		return
	}
	if valid, msg := utils.ValidatePassword(req.Password); !valid {
		utils.LogError("Registration attempt failed - Invalid password for email: %s - %s", req.Email, msg)
		utils.BadRequest(c, "Invalid password", msg)
		return
	}
	if req.Password != req.ConfirmPassword {
		utils.LogError("Registration attempt failed - Passwords do not match for email: %s", req.Email)
		utils.BadRequest(c, "Passwords do not match", "Password and confirm password must be the same.")
		return
	}

	var existing models.User
	if err := config.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		utils.LogError("Registration attempt failed - Username taken: %s", req.Username)
		utils.Conflict(c, "Username already exists", nil)
		return
	}
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.LogError("Registration attempt failed - Email taken: %s", req.Email)
		utils.Conflict(c, "Email already registered", nil)
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password for email: %s - %v", req.Email, err)
		utils.InternalServerError(c, "Failed to process registration", nil)
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Failed to create user: %v", err)
		utils.Conflict(c, "Could not create account", err.Error())
		return
	}

	utils.LogInfo("User registered successfully: %s", req.Username)
	utils.Created(c, "Account created. Please log in.", gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginUser handles user login
func LoginUser(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Login attempt failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid username or password", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		utils.LogError("Login attempt failed - User not found: %s", req.Username)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Login attempt failed - Invalid password for user: %s", req.Username)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	user.LastLoginAt = time.Now()
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Failed to update last login time for user: %s", req.Username)
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save session for user: %s - %v", req.Username, err)
	}

	tokenString, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate JWT token for user: %s", req.Username)
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	utils.LogInfo("User logged in successfully: %s", req.Username)
	utils.Success(c, "Login successful", gin.H{
		"token": tokenString,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"is_admin": user.IsAdmin,
		},
	})
}

// LogoutUser clears the caller's session
func LogoutUser(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		utils.LogError("Failed to clear session: %v", err)
		utils.InternalServerError(c, "Failed to log out", nil)
		return
	}

	utils.LogInfo("User logged out")
	utils.Success(c, "You have been logged out.", nil)
}

// CreateSampleAdmin seeds an administrator account from the environment
func CreateSampleAdmin() error {
	utils.LogInfo("CreateSampleAdmin called")

	email := os.Getenv("ADMIN_EMAIL")
	username := os.Getenv("ADMIN_USERNAME")
	if email == "" || username == "" {
		utils.LogInfo("Admin seed skipped - ADMIN_EMAIL/ADMIN_USERNAME not set")
		return nil
	}

	hashedPassword, err := utils.HashPassword(os.Getenv("ADMIN_PASSWORD"))
	if err != nil {
		utils.LogError("Failed to hash admin password: %v", err)
		return err
	}

	admin := models.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		IsAdmin:  true,
	}
	if err := config.DB.FirstOrCreate(&admin, models.User{Email: email}).Error; err != nil {
		utils.LogError("Failed to create sample admin: %v", err)
		return err
	}

	utils.LogInfo("Successfully created/updated sample admin: %s", email)
	return nil
}
