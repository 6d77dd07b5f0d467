package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"melodia/services/video"
	"melodia/utils"
)

// VideoHandler exposes the Drive lesson library.
type VideoHandler struct {
	Svc video.VideoService
}

func NewVideoHandler(svc video.VideoService) *VideoHandler {
	return &VideoHandler{Svc: svc}
}

// ListVideosHandler lists lesson videos, optionally filtered by name prefix.
func (h *VideoHandler) ListVideosHandler(c *gin.Context) {
	videos, err := h.Svc.ListVideos(c.Request.Context(), c.Query("prefix"))
	if err != nil {
		utils.GetLogger().Error("Failed to list videos", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list videos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

// UploadVideoHandler pushes a lesson recording into the Drive library.
func (h *VideoHandler) UploadVideoHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "details": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file", "details": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	f, err := os.Open(tempFilePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file", "details": err.Error()})
		return
	}
	defer f.Close()

	uploaded, err := h.Svc.UploadVideo(c.Request.Context(), f, fileHeader.Filename, c.PostForm("folderId"))
	if err != nil {
		utils.GetLogger().Error("Video upload failed",
			zap.String("filename", fileHeader.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload video"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Video uploaded", "video": uploaded})
}

// CreateFolderHandler creates a folder in the Drive library.
func (h *VideoHandler) CreateFolderHandler(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		ParentID string `json:"parentId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	folder, err := h.Svc.CreateFolder(c.Request.Context(), input.Name, input.ParentID)
	if err != nil {
		utils.GetLogger().Error("Failed to create folder", zap.String("name", input.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create folder"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Folder created", "folder": folder})
}

// ListSubfoldersHandler lists folders under a parent. The parent comes from
// the path when present, otherwise from the parentId query (root listing).
func (h *VideoHandler) ListSubfoldersHandler(c *gin.Context) {
	parentID := c.Param("id")
	if parentID == "" {
		parentID = c.Query("parentId")
	}

	folders, err := h.Svc.ListSubfolders(c.Request.Context(), parentID)
	if err != nil {
		utils.GetLogger().Error("Failed to list folders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list folders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"folders": folders})
}

// FolderDetailsHandler returns metadata for one folder.
func (h *VideoHandler) FolderDetailsHandler(c *gin.Context) {
	id := c.Param("id")

	folder, err := h.Svc.FolderDetails(c.Request.Context(), id)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch folder", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch folder"})
		return
	}
	if folder == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
		return
	}
	c.JSON(http.StatusOK, folder)
}

// DriveHealthHandler reports Drive connectivity and storage quota.
func (h *VideoHandler) DriveHealthHandler(c *gin.Context) {
	health, err := h.Svc.Health(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unreachable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, health)
}
