package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService delivers pushes to student devices.
type NotificationService interface {
	SendLessonReminder(ctx context.Context, fcmToken, date, startTime string) error
}

// FCMNotificationService is the Firebase Cloud Messaging implementation.
type FCMNotificationService struct {
	Client *messaging.Client
}

func (s *FCMNotificationService) SendLessonReminder(ctx context.Context, fcmToken, date, startTime string) error {
	if fcmToken == "" {
		return fmt.Errorf("user has no registered device token")
	}
	msg := &messaging.Message{
		Token: fcmToken,
		Notification: &messaging.Notification{
			Title: "Upcoming lesson",
			Body:  fmt.Sprintf("Your lesson on %s starts at %s.", date, startTime),
		},
	}
	if _, err := s.Client.Send(ctx, msg); err != nil {
		return fmt.Errorf("fcm send failed: %w", err)
	}
	return nil
}
