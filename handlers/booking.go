package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"melodia/models"
	"melodia/utils"
)

// CreateBookingHandler books a slot for a student. The user reference comes
// from the verified auth token when present, otherwise from the request body
// (service-to-service calls).
func (h *ScheduleHandler) CreateBookingHandler(c *gin.Context) {
	var input struct {
		TimeSlotID string `json:"timeSlotId"`
		UserRef    string `json:"userRef"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	userRef := c.GetString("authUid")
	if userRef == "" {
		userRef = input.UserRef
	}

	detail, err := h.Svc.CreateBooking(c.Request.Context(), input.TimeSlotID, userRef)
	if err != nil {
		abortScheduleError(c, err, "Failed to create booking")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Booking created", "booking": detail})
}

// UpdateBookingStatusHandler moves a booking through its status lifecycle.
// Cancelling frees the slot for rebooking.
func (h *ScheduleHandler) UpdateBookingStatusHandler(c *gin.Context) {
	id := c.Param("id")

	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	detail, err := h.Svc.UpdateBookingStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		abortScheduleError(c, err, "Failed to update booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking updated", "booking": detail})
}

// ListBookingsHandler returns bookings filtered by user, date or slot.
func (h *ScheduleHandler) ListBookingsHandler(c *gin.Context) {
	filter := models.BookingFilter{
		UserID: c.Query("userId"),
		Date:   c.Query("date"),
		SlotID: c.Query("timeSlotId"),
	}

	bookings, err := h.Svc.ListBookings(c.Request.Context(), filter)
	if err != nil {
		abortScheduleError(c, err, "Failed to fetch bookings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
