package cron

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"melodia/config"
	bookingRepo "melodia/database/repository/booking"
	userRepo "melodia/database/repository/user"
	"melodia/models"
	"melodia/services/notification"
	"melodia/services/tasks"
	"melodia/utils"
)

// InitReminderWorker runs the lesson-reminder worker in the background.
func InitReminderWorker(notifSvc notification.NotificationService, bookings bookingRepo.Repository, users userRepo.Repository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: config.AppConfig.ReminderConcurrency,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeLessonReminder, handleLessonReminder(notifSvc, bookings, users))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[ReminderWorker] worker stopped: %v", err)
		}
	}()
}

// handleLessonReminder re-checks booking status at fire time so cancellations
// between enqueue and delivery never page the student.
func handleLessonReminder(notifSvc notification.NotificationService, bookings bookingRepo.Repository, users userRepo.Repository) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		logger := utils.GetLogger()

		var payload models.ReminderPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			logger.Error("Malformed reminder payload", zap.Error(err))
			return nil // not retryable
		}

		booking, err := bookings.GetByID(ctx, payload.BookingID)
		if err != nil {
			return err
		}
		if booking == nil || !booking.Active() {
			logger.Debug("Skipping reminder for inactive booking",
				zap.String("bookingId", payload.BookingID))
			return nil
		}

		user, err := users.GetByID(ctx, booking.UserID)
		if err != nil {
			return err
		}
		if user == nil || user.FCMToken == "" {
			logger.Debug("Skipping reminder, no deliverable device",
				zap.String("bookingId", payload.BookingID))
			return nil
		}

		if err := notifSvc.SendLessonReminder(ctx, user.FCMToken, booking.BookingDate, booking.StartTime); err != nil {
			logger.Warn("Lesson reminder delivery failed",
				zap.String("bookingId", payload.BookingID), zap.Error(err))
			return err
		}

		logger.Info("Lesson reminder sent",
			zap.String("bookingId", payload.BookingID),
			zap.String("userId", booking.UserID))
		return nil
	}
}
