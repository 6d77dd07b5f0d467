package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	"melodia/config"
	"melodia/cron"
	"melodia/database"
	bookingRepoPkg "melodia/database/repository/booking"
	classroomRepoPkg "melodia/database/repository/classroom"
	slotRepoPkg "melodia/database/repository/slot"
	subjectRepoPkg "melodia/database/repository/subject"
	userRepoPkg "melodia/database/repository/user"
	"melodia/handlers"
	"melodia/middleware"
	"melodia/routes"
	"melodia/services/catalog"
	"melodia/services/classroom"
	"melodia/services/notification"
	"melodia/services/payment"
	"melodia/services/schedule"
	"melodia/services/tasks"
	userSvcPkg "melodia/services/user"
	"melodia/services/video"
	"melodia/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	mediaService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize media service: %v", err)
	}

	videoService, err := video.NewDriveVideoService(context.Background())
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize drive video service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	slotRepo := slotRepoPkg.NewMongoSlotRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	classroomRepo := classroomRepoPkg.NewMongoClassroomRepo()
	subjectRepo := subjectRepoPkg.NewMongoSubjectRepo()

	for _, ensure := range []func() error{
		slotRepo.EnsureIndexes,
		bookingRepo.EnsureIndexes,
		userRepo.EnsureIndexes,
		classroomRepo.EnsureIndexes,
		subjectRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// Services.
	reminderScheduler := tasks.NewAsynqReminderScheduler()
	scheduleService := &schedule.DefaultScheduleService{
		Slots:     slotRepo,
		Bookings:  bookingRepo,
		Users:     userRepo,
		Reminders: reminderScheduler,
	}

	userService := &userSvcPkg.DefaultUserService{
		Repo:       userRepo,
		Classrooms: classroomRepo,
		Subjects:   subjectRepo,
	}

	classroomService := &classroom.DefaultClassroomService{
		Repo:     classroomRepo,
		Users:    userRepo,
		Subjects: subjectRepo,
	}

	catalogService := &catalog.DefaultCatalogService{
		Repo:     subjectRepo,
		Cache:    utils.GetCacheClient(),
		CacheTTL: time.Duration(config.AppConfig.CatalogCacheTTLSec) * time.Second,
	}

	paymentService := &payment.DefaultPaymentService{
		Users:    userRepo,
		Amount:   config.AppConfig.TuitionAmount,
		Currency: config.AppConfig.TuitionCurrency,
	}

	notificationService := &notification.FCMNotificationService{
		Client: utils.FCMClient,
	}

	// Background reminder worker.
	cron.InitReminderWorker(notificationService, bookingRepo, userRepo)

	// Handlers.
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	userHandler := handlers.NewUserHandler(userService)
	classroomHandler := handlers.NewClassroomHandler(classroomService)
	subjectHandler := handlers.NewSubjectHandler(catalogService, mediaService)
	videoHandler := handlers.NewVideoHandler(videoService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	handlerBundle := &handlers.HandlerBundle{
		// Slot endpoints.
		ListTimeSlotsHandler:        scheduleHandler.ListTimeSlotsHandler,
		CreateTimeSlotsHandler:      scheduleHandler.CreateTimeSlotsHandler,
		GenerateTimeSlotsHandler:    scheduleHandler.GenerateTimeSlotsHandler,
		DeleteTimeSlotHandler:       scheduleHandler.DeleteTimeSlotHandler,
		DeleteDuplicateSlotsHandler: scheduleHandler.DeleteDuplicateSlotsHandler,

		// Booking endpoints.
		ListBookingsHandler:        scheduleHandler.ListBookingsHandler,
		CreateBookingHandler:       scheduleHandler.CreateBookingHandler,
		UpdateBookingStatusHandler: scheduleHandler.UpdateBookingStatusHandler,

		// User endpoints.
		ListUsersHandler:   userHandler.ListUsersHandler,
		UpdateUserHandler:  userHandler.UpdateUserHandler,
		AuthWebhookHandler: userHandler.AuthWebhookHandler,

		// Classroom endpoints.
		CreateClassroomHandler: classroomHandler.CreateClassroomHandler,
		ListClassroomsHandler:  classroomHandler.ListClassroomsHandler,
		GetClassroomHandler:    classroomHandler.GetClassroomHandler,
		AddSubjectHandler:      classroomHandler.AddSubjectHandler,

		// Catalog endpoints.
		ListSubjectsHandler:  subjectHandler.ListSubjectsHandler,
		GetSubjectHandler:    subjectHandler.GetSubjectHandler,
		CreateSubjectHandler: subjectHandler.CreateSubjectHandler,

		// Video library endpoints.
		ListVideosHandler:     videoHandler.ListVideosHandler,
		UploadVideoHandler:    videoHandler.UploadVideoHandler,
		CreateFolderHandler:   videoHandler.CreateFolderHandler,
		ListSubfoldersHandler: videoHandler.ListSubfoldersHandler,
		FolderDetailsHandler:  videoHandler.FolderDetailsHandler,
		DriveHealthHandler:    videoHandler.DriveHealthHandler,

		// Payment endpoints.
		CreateTuitionIntentHandler: paymentHandler.CreateTuitionIntentHandler,

		// Admin auth.
		AdminLoginHandler: handlers.AdminLoginHandler,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
