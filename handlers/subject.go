package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"melodia/models"
	"melodia/services/catalog"
	"melodia/services/media"
	"melodia/services/video"
	"melodia/utils"
)

// SubjectHandler exposes the course catalog. Creation accepts an optional
// thumbnail image which goes through the media CDN.
type SubjectHandler struct {
	Svc   catalog.CatalogService
	Media media.MediaService
}

func NewSubjectHandler(svc catalog.CatalogService, mediaSvc media.MediaService) *SubjectHandler {
	return &SubjectHandler{Svc: svc, Media: mediaSvc}
}

// ListSubjectsHandler returns the full catalog.
func (h *SubjectHandler) ListSubjectsHandler(c *gin.Context) {
	subjects, err := h.Svc.ListSubjects(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to fetch subjects", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subjects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subjects": subjects})
}

// GetSubjectHandler returns one subject with its playable video URL.
func (h *SubjectHandler) GetSubjectHandler(c *gin.Context) {
	id := c.Param("id")

	subject, err := h.Svc.GetSubject(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrSubjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subject not found"})
			return
		}
		utils.GetLogger().Error("Failed to fetch subject", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subject"})
		return
	}
	c.JSON(http.StatusOK, subject)
}

// CreateSubjectHandler creates a subject from a multipart form. Fields arrive
// as form values; an optional "thumbnail" file part is uploaded to the CDN.
func (h *SubjectHandler) CreateSubjectHandler(c *gin.Context) {
	subject := models.Subject{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Description: c.PostForm("description"),
		VideoKey:    strings.TrimSpace(c.PostForm("videoKey")),
		Duration:    c.PostForm("duration"),
		IsFree:      c.PostForm("isFree") == "true",
	}
	if points := c.PostForm("keyPoints"); points != "" {
		for _, p := range strings.Split(points, ";") {
			if p = strings.TrimSpace(p); p != "" {
				subject.KeyPoints = append(subject.KeyPoints, p)
			}
		}
	}

	if fileHeader, err := c.FormFile("thumbnail"); err == nil {
		tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
		if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save thumbnail", "details": err.Error()})
			return
		}
		defer os.Remove(tempFilePath)

		url, _, err := h.Media.UploadImage(c.Request.Context(), tempFilePath, "subjects/thumbnails")
		if err != nil {
			utils.GetLogger().Error("Thumbnail upload failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload thumbnail"})
			return
		}
		subject.ThumbnailURL = url
	}

	if subject.VideoKey != "" {
		url, err := video.PreviewURL(subject.VideoKey)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid videoKey"})
			return
		}
		subject.VideoURL = url
	}

	created, err := h.Svc.CreateSubject(c.Request.Context(), subject)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrTitleRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		case errors.Is(err, catalog.ErrVideoKeyRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "videoKey is required"})
		default:
			utils.GetLogger().Error("Failed to create subject", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subject"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Subject created", "subject": created})
}
