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

// AuthWebhookHandler syncs user records from auth-provider events. The auth
// provider calls this on sign-up and profile changes; records are created or
// patched by auth UID.
func (h *UserHandler) AuthWebhookHandler(c *gin.Context) {
	var ev models.AuthEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	synced, err := h.Svc.UpsertFromAuthEvent(c.Request.Context(), ev)
	if err != nil {
		if errors.Is(err, user.ErrMissingAuthUID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "uid is required"})
			return
		}
		utils.GetLogger().Error("Auth webhook sync failed", zap.String("uid", ev.UID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User synced", "user": synced})
}
