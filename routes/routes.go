package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"melodia/handlers"
	"melodia/middleware"
)

// RegisterScheduleRoutes registers slot and booking endpoints. Slot writes
// are admin-only; bookings require a signed-in student.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	slots := r.Group("/api/timeslots")
	{
		slots.GET("", hb.ListTimeSlotsHandler)
		slots.GET("/generate", hb.GenerateTimeSlotsHandler)

		admin := slots.Group("")
		admin.Use(middleware.AdminAuthMiddleware())
		admin.POST("", hb.CreateTimeSlotsHandler)
		admin.DELETE("/:id", hb.DeleteTimeSlotHandler)
		admin.DELETE("/duplicates/:date/:startTime/:endTime", hb.DeleteDuplicateSlotsHandler)
	}

	bookings := r.Group("/api/bookings")
	{
		bookings.GET("", hb.ListBookingsHandler)
		bookings.PATCH("/:id", hb.UpdateBookingStatusHandler)

		// Token optional: service-to-service callers pass userRef in the body.
		authed := bookings.Group("")
		authed.Use(middleware.FirebaseAuthMiddleware(true))
		authed.POST("", hb.CreateBookingHandler)
	}
}

// RegisterUserRoutes registers the student directory endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.GET("", hb.ListUsersHandler)

		admin := api.Group("")
		admin.Use(middleware.AdminAuthMiddleware())
		admin.PATCH("/:id", hb.UpdateUserHandler)
	}

	r.POST("/webhooks/auth", hb.AuthWebhookHandler)
}

// RegisterClassroomRoutes registers classroom management endpoints (admin only).
func RegisterClassroomRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/classrooms")
	{
		api.Use(middleware.AdminAuthMiddleware())
		api.POST("", hb.CreateClassroomHandler)
		api.GET("", hb.ListClassroomsHandler)
		api.GET("/:id", hb.GetClassroomHandler)
		api.POST("/:id/subjects", hb.AddSubjectHandler)
	}
}

// RegisterCatalogRoutes registers the course catalog endpoints. Reads are
// public; creation is admin only.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/subjects")
	{
		api.GET("", hb.ListSubjectsHandler)
		api.GET("/:id", hb.GetSubjectHandler)

		admin := api.Group("")
		admin.Use(middleware.AdminAuthMiddleware())
		admin.POST("", hb.CreateSubjectHandler)
	}
}

// RegisterVideoRoutes registers the Drive lesson library endpoints (admin only)
// plus the public drive health probe.
func RegisterVideoRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/videos")
	{
		api.Use(middleware.AdminAuthMiddleware())
		api.GET("", hb.ListVideosHandler)
		api.POST("/upload", hb.UploadVideoHandler)
		api.POST("/folders", hb.CreateFolderHandler)
		api.GET("/folders", hb.ListSubfoldersHandler)
		api.GET("/folders/:id/details", hb.FolderDetailsHandler)
		api.GET("/folders/:id/subfolders", hb.ListSubfoldersHandler)
	}

	r.GET("/api/health/drive", hb.DriveHealthHandler)
}

// RegisterPaymentRoutes registers tuition payment endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.FirebaseAuthMiddleware(false))
		api.POST("/intent", hb.CreateTuitionIntentHandler)
	}
}

// RegisterAdminRoutes registers the admin login endpoint.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/admin/login", hb.AdminLoginHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Melodia"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterScheduleRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterClassroomRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterVideoRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
