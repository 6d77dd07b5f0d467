package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"melodia/services/classroom"
	"melodia/utils"
)

// ClassroomHandler exposes class management for the admin dashboard.
type ClassroomHandler struct {
	Svc classroom.ClassroomService
}

func NewClassroomHandler(svc classroom.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{Svc: svc}
}

// CreateClassroomHandler creates a class and mints its join code.
func (h *ClassroomHandler) CreateClassroomHandler(c *gin.Context) {
	var input struct {
		ClassName string `json:"className"`
		EndDate   string `json:"endDate"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.Svc.CreateClassroom(c.Request.Context(), input.ClassName, input.EndDate)
	if err != nil {
		if errors.Is(err, classroom.ErrClassNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "className is required"})
			return
		}
		utils.GetLogger().Error("Failed to create classroom", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create classroom"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Classroom created", "classroom": created})
}

// ListClassroomsHandler returns classroom summaries.
func (h *ClassroomHandler) ListClassroomsHandler(c *gin.Context) {
	summaries, err := h.Svc.ListClassrooms(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to fetch classrooms", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch classrooms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"classrooms": summaries})
}

// GetClassroomHandler returns one classroom with roster and subjects populated.
func (h *ClassroomHandler) GetClassroomHandler(c *gin.Context) {
	id := c.Param("id")

	detail, err := h.Svc.GetClassroom(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, classroom.ErrClassroomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Classroom not found"})
			return
		}
		utils.GetLogger().Error("Failed to fetch classroom", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch classroom"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// AddSubjectHandler assigns a catalog subject to a classroom.
func (h *ClassroomHandler) AddSubjectHandler(c *gin.Context) {
	id := c.Param("id")

	var input struct {
		SubjectID string `json:"subjectId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.SubjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subjectId is required"})
		return
	}

	if err := h.Svc.AddSubject(c.Request.Context(), id, input.SubjectID); err != nil {
		if errors.Is(err, classroom.ErrClassroomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Classroom not found"})
			return
		}
		utils.GetLogger().Error("Failed to add subject to classroom",
			zap.String("classroomId", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add subject"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subject added to classroom"})
}
