package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/HariStrange/drive-Vault/domain"
	"github.com/HariStrange/drive-Vault/internal/http/middleware"
)

// UserHandlers serves profile and admin user queries
type UserHandlers struct {
	userSvc domain.UserService
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(userSvc domain.UserService) *UserHandlers {
	return &UserHandlers{userSvc: userSvc}
}

// Me returns the caller's profile
func (h *UserHandlers) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	user, err := h.userSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// List returns non-admin users, optionally filtered by ?role=
func (h *UserHandlers) List(c *gin.Context) {
	users, err := h.userSvc.ListUsers(c.Request.Context(), c.Query("role"))
	if err != nil {
		respondError(c, err, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
}

// Get returns one user by id
func (h *UserHandlers) Get(c *gin.Context) {
	id, ok := parseID(c, "userId")
	if !ok {
		return
	}

	user, err := h.userSvc.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Stats returns non-admin account counts
func (h *UserHandlers) Stats(c *gin.Context) {
	stats, err := h.userSvc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// parseID reads a positive integer path parameter, answering 400 otherwise
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}
