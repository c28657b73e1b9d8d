package groups

import (
	"net/http"
	"strconv"

	"github.com/connexa/connexa/pkg/connexa/auth"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles study-group requests
type Handler struct {
	service *Service
}

// NewHandler creates a new groups handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{service: NewService(db)}
}

// CreateGroupRequest represents the request to create a group
type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Subject     string `json:"subject" binding:"omitempty,max=100"`
}

// List returns active groups, optionally filtered by subject substring,
// viewer's own groups (my_groups=true) or viewer membership (member_of=true)
func (h *Handler) List(c *gin.Context) {
	var viewerID *uint
	if id, ok := auth.GetUserID(c); ok {
		viewerID = &id
	}

	filters := ListFilters{Subject: c.Query("subject")}
	if c.Query("my_groups") == "true" && viewerID != nil {
		filters.CreatedBy = *viewerID
	}
	if c.Query("member_of") == "true" {
		filters.MemberOf = true
	}

	groups, err := h.service.List(filters, viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	c.JSON(http.StatusOK, groups)
}

// Create creates a new group owned by the authenticated user
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.service.Create(CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		Subject:     req.Subject,
	}, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	c.JSON(http.StatusCreated, group)
}

// Get returns a group with its active members
func (h *Handler) Get(c *gin.Context) {
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}

	detail, err := h.service.GetByID(groupID)
	if err != nil {
		if err == ErrGroupNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
		}
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Delete soft-deletes a group (creator only)
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}

	switch err := h.service.Delete(groupID, userID); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"message": "Group deleted"})
	case ErrGroupNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
	case ErrNotGroupCreator:
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the group creator may delete the group"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete group"})
	}
}

// Join adds the authenticated user to a group
func (h *Handler) Join(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}

	membership, err := h.service.Join(groupID, userID)
	switch err {
	case nil:
		c.JSON(http.StatusCreated, membership)
	case ErrGroupNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
	case ErrAlreadyMember:
		c.JSON(http.StatusConflict, gin.H{"error": "Already a member of this group"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join group"})
	}
}

// Leave removes the authenticated user from a group
func (h *Handler) Leave(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}

	switch err := h.service.Leave(groupID, userID); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"message": "Left the group"})
	case ErrGroupNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
	case ErrCreatorCannotLeave:
		c.JSON(http.StatusForbidden, gin.H{"error": "The group creator cannot leave; delete the group instead"})
	case ErrNotAMember:
		c.JSON(http.StatusNotFound, gin.H{"error": "Not a member of this group"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave group"})
	}
}

// parseGroupID parses the :id path parameter, writing a 400 response on
// malformed input
func parseGroupID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return 0, false
	}
	return uint(id), true
}

// RegisterRoutes registers group routes. Listing and detail are public
// (listing resolves the viewer when a token is present); everything that
// mutates state requires authentication.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", auth.OptionalAuthMiddleware(), h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", auth.AuthMiddleware(), h.Create)
	rg.DELETE("/:id", auth.AuthMiddleware(), h.Delete)
	rg.POST("/:id/join", auth.AuthMiddleware(), h.Join)
	rg.POST("/:id/leave", auth.AuthMiddleware(), h.Leave)
}
