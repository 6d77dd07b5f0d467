package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"melodia/services/payment"
	"melodia/utils"
)

// PaymentHandler exposes tuition payment intents.
type PaymentHandler struct {
	Svc payment.PaymentService
}

func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Svc: svc}
}

// CreateTuitionIntentHandler creates a Stripe payment intent for the given
// student and returns the client secret for the mobile payment sheet.
func (h *PaymentHandler) CreateTuitionIntentHandler(c *gin.Context) {
	var input struct {
		UserID string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	intent, err := h.Svc.CreateTuitionIntent(c.Request.Context(), input.UserID)
	if err != nil {
		if errors.Is(err, payment.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		utils.GetLogger().Error("Failed to create payment intent",
			zap.String("userId", input.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		return
	}
	c.JSON(http.StatusCreated, intent)
}
