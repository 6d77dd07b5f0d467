package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"melodia/config"
	"melodia/models"
)

const TypeLessonReminder = "reminder:lesson"

// NewLessonReminderTask builds an asynq task scheduled to fire at fireAt.
func NewLessonReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeLessonReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}
	return task, opts, nil
}

// AsynqReminderScheduler enqueues lesson reminders on the Redis-backed queue.
// It satisfies schedule.ReminderScheduler.
type AsynqReminderScheduler struct {
	Client      *asynq.Client
	LeadMinutes int
}

// NewAsynqReminderScheduler wires a scheduler onto the configured Redis queue DB.
func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &AsynqReminderScheduler{
		Client:      client,
		LeadMinutes: config.AppConfig.ReminderLeadMinutes,
	}
}

// ScheduleLessonReminder enqueues a reminder LeadMinutes before the lesson
// start. Lessons already closer than the lead time get no reminder.
func (s *AsynqReminderScheduler) ScheduleLessonReminder(ctx context.Context, b models.Booking) error {
	start, err := time.ParseInLocation("2006-01-02 15:04", b.BookingDate+" "+b.StartTime, time.Local)
	if err != nil {
		return fmt.Errorf("invalid lesson start: %w", err)
	}

	fireAt := start.Add(-time.Duration(s.LeadMinutes) * time.Minute)
	if !fireAt.After(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		BookingID: b.ID,
		UserID:    b.UserID,
		Date:      b.BookingDate,
		StartTime: b.StartTime,
	}
	task, opts, err := NewLessonReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue lesson reminder: %w", err)
	}
	return nil
}
