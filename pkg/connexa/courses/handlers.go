package courses

import (
	"net/http"

	"github.com/connexa/connexa/pkg/connexa/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles course catalog requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new courses handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// List returns all courses ordered by name
func (h *Handler) List(c *gin.Context) {
	var courses []models.Course
	if err := h.db.Order("name").Find(&courses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch courses"})
		return
	}

	c.JSON(http.StatusOK, courses)
}

// RegisterRoutes registers course routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
}

// defaultCourses is the catalog seeded on first startup
var defaultCourses = []string{
	"Computer Science",
	"Software Engineering",
	"Information Systems",
	"Data Science",
	"Mathematics",
	"Physics",
}

// Seed inserts the default course catalog when the table is empty
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, name := range defaultCourses {
		if err := db.Create(&models.Course{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}
