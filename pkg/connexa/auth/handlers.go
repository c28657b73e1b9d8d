package auth

import (
	"net/http"

	"github.com/connexa/connexa/pkg/connexa/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles authentication requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new auth handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	FullName           string `json:"full_name" binding:"required,min=2,max=255"`
	InstitutionalEmail string `json:"institutional_email" binding:"required,email"`
	Password           string `json:"password" binding:"required,min=8"`
	CourseID           uint   `json:"course_id" binding:"required"`
	CurrentSemester    int    `json:"current_semester" binding:"required,min=1,max=20"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	InstitutionalEmail string `json:"institutional_email" binding:"required,email"`
	Password           string `json:"password" binding:"required"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID                 uint   `json:"id"`
	FullName           string `json:"full_name"`
	InstitutionalEmail string `json:"institutional_email"`
	CourseID           *uint  `json:"course_id"`
	CourseName         string `json:"course_name,omitempty"`
	CurrentSemester    int    `json:"current_semester"`
}

func userResponse(user models.User) UserResponse {
	resp := UserResponse{
		ID:                 user.ID,
		FullName:           user.FullName,
		InstitutionalEmail: user.InstitutionalEmail,
		CourseID:           user.CourseID,
		CurrentSemester:    user.CurrentSemester,
	}
	if user.Course != nil {
		resp.CourseName = user.Course.Name
	}
	return resp
}

// Register handles user registration
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !IsValidFullName(req.FullName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Full name must contain only letters and spaces"})
		return
	}
	if !IsInstitutionalEmail(req.InstitutionalEmail) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email must belong to an institutional domain"})
		return
	}
	if !IsStrongPassword(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must contain lowercase, uppercase, digit and special characters"})
		return
	}

	// Check if email already exists
	var existingUser models.User
	if err := h.db.Where("institutional_email = ?", req.InstitutionalEmail).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	// Course must exist
	var course models.Course
	if err := h.db.First(&course, req.CourseID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Course not found"})
		return
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	user := models.User{
		FullName:           req.FullName,
		InstitutionalEmail: req.InstitutionalEmail,
		PasswordHash:       hashedPassword,
		CourseID:           &req.CourseID,
		CurrentSemester:    req.CurrentSemester,
	}
	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	user.Course = &course

	token, err := GenerateToken(user.ID, user.InstitutionalEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Token: token,
		User:  userResponse(user),
	})
}

// Login handles user login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.db.Preload("Course").Where("institutional_email = ?", req.InstitutionalEmail).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !CheckPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := GenerateToken(user.ID, user.InstitutionalEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  userResponse(user),
	})
}

// Refresh exchanges a still-valid token for a fresh one
func (h *Handler) Refresh(c *gin.Context) {
	tokenString, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
		return
	}

	claims, err := ValidateToken(tokenString)
	if err != nil {
		if err == ErrExpiredToken {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
		} else {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		}
		return
	}

	// The user must still exist to renew a session
	var user models.User
	if err := h.db.First(&user, claims.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	token, err := GenerateToken(user.ID, user.InstitutionalEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Me returns the current authenticated user's profile
func (h *Handler) Me(c *gin.Context) {
	userID, exists := GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var user models.User
	if err := h.db.Preload("Course").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, userResponse(user))
}

// RegisterRoutes registers auth routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
	rg.POST("/refresh", h.Refresh)
	rg.GET("/me", AuthMiddleware(), h.Me)
}
