package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	// Slot endpoints.
	ListTimeSlotsHandler        gin.HandlerFunc
	CreateTimeSlotsHandler      gin.HandlerFunc
	GenerateTimeSlotsHandler    gin.HandlerFunc
	DeleteTimeSlotHandler       gin.HandlerFunc
	DeleteDuplicateSlotsHandler gin.HandlerFunc

	// Booking endpoints.
	ListBookingsHandler        gin.HandlerFunc
	CreateBookingHandler       gin.HandlerFunc
	UpdateBookingStatusHandler gin.HandlerFunc

	// User endpoints.
	ListUsersHandler   gin.HandlerFunc
	UpdateUserHandler  gin.HandlerFunc
	AuthWebhookHandler gin.HandlerFunc

	// Classroom endpoints.
	CreateClassroomHandler gin.HandlerFunc
	ListClassroomsHandler  gin.HandlerFunc
	GetClassroomHandler    gin.HandlerFunc
	AddSubjectHandler      gin.HandlerFunc

	// Catalog endpoints.
	ListSubjectsHandler  gin.HandlerFunc
	GetSubjectHandler    gin.HandlerFunc
	CreateSubjectHandler gin.HandlerFunc

	// Video library endpoints.
	ListVideosHandler     gin.HandlerFunc
	UploadVideoHandler    gin.HandlerFunc
	CreateFolderHandler   gin.HandlerFunc
	ListSubfoldersHandler gin.HandlerFunc
	FolderDetailsHandler  gin.HandlerFunc
	DriveHealthHandler    gin.HandlerFunc

	// Payment endpoints.
	CreateTuitionIntentHandler gin.HandlerFunc

	// Admin auth.
	AdminLoginHandler gin.HandlerFunc
}
