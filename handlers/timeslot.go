package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"melodia/config"
	"melodia/models"
	"melodia/services/schedule"
	"melodia/utils"
)

// ScheduleHandler exposes the slot and booking lifecycle over HTTP.
type ScheduleHandler struct {
	Svc schedule.Service
}

func NewScheduleHandler(svc schedule.Service) *ScheduleHandler {
	return &ScheduleHandler{Svc: svc}
}

// statusForScheduleError maps the service error taxonomy onto HTTP codes.
func statusForScheduleError(err error) int {
	switch schedule.CodeOf(err) {
	case schedule.CodeInvalidArgument:
		return http.StatusBadRequest
	case schedule.CodeNotFound:
		return http.StatusNotFound
	case schedule.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortScheduleError(c *gin.Context, err error, fallback string) {
	status := statusForScheduleError(err)
	if status == http.StatusInternalServerError {
		utils.GetLogger().Error(fallback, zap.Error(err))
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	var se *schedule.Error
	if errors.As(err, &se) {
		c.JSON(status, gin.H{"error": se.Message})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// ListTimeSlotsHandler returns slots, optionally filtered to one calendar day.
func (h *ScheduleHandler) ListTimeSlotsHandler(c *gin.Context) {
	slots, err := h.Svc.ListSlots(c.Request.Context(), c.Query("date"))
	if err != nil {
		abortScheduleError(c, err, "Failed to fetch time slots")
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// CreateTimeSlotsHandler creates a batch of slots, skipping windows that
// already exist.
func (h *ScheduleHandler) CreateTimeSlotsHandler(c *gin.Context) {
	var input struct {
		Slots []models.SlotInput `json:"slots"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.Svc.CreateSlots(c.Request.Context(), input.Slots)
	if err != nil {
		abortScheduleError(c, err, "Failed to create time slots")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Created %d time slot(s)", len(created)),
		"slots":   created,
	})
}

// GenerateTimeSlotsHandler previews the standard lesson grid for a day
// without persisting anything.
func (h *ScheduleHandler) GenerateTimeSlotsHandler(c *gin.Context) {
	date := c.Query("date")
	if !schedule.ValidDate(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
		return
	}

	cfg := config.AppConfig
	entries := schedule.GenerateDailySlots(date,
		cfg.LessonStartHour, cfg.LessonEndHour,
		cfg.LessonDurationMin, cfg.LessonBreakMin)
	c.JSON(http.StatusOK, gin.H{"slots": entries})
}

// DeleteTimeSlotHandler removes a slot and cancels any booking that holds it.
func (h *ScheduleHandler) DeleteTimeSlotHandler(c *gin.Context) {
	id := c.Param("id")

	if err := h.Svc.DeleteSlot(c.Request.Context(), id); err != nil {
		abortScheduleError(c, err, "Failed to delete time slot")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Time slot deleted"})
}

// DeleteDuplicateSlotsHandler reconciles duplicate slots for one time window,
// keeping the oldest copy.
func (h *ScheduleHandler) DeleteDuplicateSlotsHandler(c *gin.Context) {
	key := models.SlotKey{
		Date:      c.Param("date"),
		StartTime: c.Param("startTime"),
		EndTime:   c.Param("endTime"),
	}

	report, err := h.Svc.DeleteDuplicates(c.Request.Context(), key)
	if err != nil {
		abortScheduleError(c, err, "Failed to delete duplicate slots")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    fmt.Sprintf("Deleted %d duplicate slot(s)", report.Deleted),
		"deleted":    report.Deleted,
		"deletedIds": report.DeletedIDs,
		"keptSlotId": report.KeptSlotID,
	})
}
