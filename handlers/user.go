package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"melodia/models"
	"melodia/services/user"
	"melodia/utils"
)

// UserHandler exposes the student directory.
type UserHandler struct {
	Svc user.UserService
}

func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Svc: svc}
}

// ListUsersHandler returns students with their classroom populated. The uid
// query narrows the list to one auth subject, which is how clients fetch
// their own profile.
func (h *UserHandler) ListUsersHandler(c *gin.Context) {
	authUID := c.Query("uid")

	users, err := h.Svc.ListUsers(c.Request.Context(), authUID)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdateUserHandler applies the admin-editable fields: payment flag,
// classroom assignment, device token.
func (h *UserHandler) UpdateUserHandler(c *gin.Context) {
	id := c.Param("id")

	var update models.UserUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	detail, err := h.Svc.UpdateUser(c.Request.Context(), id, update)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, user.ErrClassroomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Classroom not found"})
		case errors.Is(err, user.ErrNoUpdatableFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No updatable fields provided"})
		default:
			utils.GetLogger().Error("Failed to update user", zap.String("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated", "user": detail})
}
