package schedule

import (
	"context"

	bookingRepo "melodia/database/repository/booking"
	slotRepo "melodia/database/repository/slot"
	userRepo "melodia/database/repository/user"
	"melodia/models"
)

// Service is the booking lifecycle orchestrator. It is the only component
// that creates or cancels bookings, and the only one that mutates a slot's
// isBooked flag in lockstep with booking status.
type Service interface {
	ListSlots(ctx context.Context, date string) ([]models.TimeSlot, error)
	CreateSlots(ctx context.Context, entries []models.SlotInput) ([]models.TimeSlot, error)
	DeleteSlot(ctx context.Context, id string) error
	DeleteDuplicates(ctx context.Context, key models.SlotKey) (*models.DuplicateReport, error)

	CreateBooking(ctx context.Context, slotID, authUID string) (*models.BookingDetail, error)
	UpdateBookingStatus(ctx context.Context, id, status string) (*models.BookingDetail, error)
	ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.BookingDetail, error)
}

// ReminderScheduler enqueues a lesson reminder for a freshly created booking.
type ReminderScheduler interface {
	ScheduleLessonReminder(ctx context.Context, b models.Booking) error
}

// DefaultScheduleService is the production Service backed by the Mongo repositories.
type DefaultScheduleService struct {
	Slots    slotRepo.Repository
	Bookings bookingRepo.Repository
	Users    userRepo.Repository
	// Reminders is optional; booking creation proceeds when it is nil or failing.
	Reminders ReminderScheduler
}
