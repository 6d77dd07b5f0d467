package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"melodia/models"
	"melodia/utils"
)

// CreateBooking reserves a free slot for the user behind authUID, creating a
// stub user record when the auth provider has not synced one yet.
//
// The reservation is a single conditional update on the slot document
// (isBooked false -> true), so two concurrent requests against the same slot
// cannot both win; the loser gets a conflict.
func (s *DefaultScheduleService) CreateBooking(ctx context.Context, slotID, authUID string) (*models.BookingDetail, error) {
	logger := utils.GetLogger()
	if slotID == "" {
		return nil, NewInvalidArgumentError("Time slot ID is required")
	}
	if authUID == "" {
		return nil, NewInvalidArgumentError("User ID is required")
	}

	slot, err := s.Slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch time slot: %w", err)
	}
	if slot == nil {
		return nil, NewNotFoundError("Time slot not found")
	}
	if slot.IsBooked {
		return nil, NewConflictError("This time slot is already booked")
	}

	user, err := s.resolveUser(ctx, authUID)
	if err != nil {
		return nil, err
	}

	existing, err := s.Bookings.FindActiveByUserAndKey(ctx, user.ID, slot.Key())
	if err != nil {
		return nil, fmt.Errorf("failed to check existing bookings: %w", err)
	}
	if existing != nil {
		return nil, NewConflictError("You already have a booking for this slot")
	}

	reserved, err := s.Slots.Reserve(ctx, slot.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve time slot: %w", err)
	}
	if !reserved {
		// Lost the race to a concurrent request.
		return nil, NewConflictError("This time slot is already booked")
	}

	booking := models.Booking{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		BookingDate: slot.Date,
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		Status:      models.BookingStatusBooked,
	}
	if err := s.Bookings.Insert(ctx, booking); err != nil {
		// Compensate so the slot does not stay blocked by a booking that
		// was never recorded.
		if relErr := s.Slots.ReleaseByKey(ctx, slot.Key()); relErr != nil {
			logger.Error("Failed to release slot after booking insert failure",
				zap.String("slotId", slot.ID), zap.Error(relErr))
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleLessonReminder(ctx, booking); err != nil {
			logger.Warn("Failed to schedule lesson reminder",
				zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}

	logger.Info("Booking created",
		zap.String("bookingId", booking.ID),
		zap.String("userId", user.ID),
		zap.String("date", booking.BookingDate),
		zap.String("startTime", booking.StartTime))
	return &models.BookingDetail{Booking: booking, User: user}, nil
}

// resolveUser finds the user by auth-provider UID, creating a minimal record
// when out-of-band provisioning has not happened yet.
func (s *DefaultScheduleService) resolveUser(ctx context.Context, authUID string) (*models.User, error) {
	user, err := s.Users.GetByAuthUID(ctx, authUID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	stub := models.User{ID: uuid.New().String(), AuthUID: authUID}
	if err := s.Users.Insert(ctx, stub); err != nil {
		return nil, fmt.Errorf("failed to create user record: %w", err)
	}
	return &stub, nil
}

// UpdateBookingStatus transitions a booking to pending, confirmed or
// cancelled ("canceled" on the wire is normalized). Cancellation frees every
// slot sharing the booking's time window, duplicates included.
func (s *DefaultScheduleService) UpdateBookingStatus(ctx context.Context, id, status string) (*models.BookingDetail, error) {
	if id == "" {
		return nil, NewInvalidArgumentError("Booking ID is required")
	}
	normalized := status
	if status == "canceled" {
		normalized = models.BookingStatusCancelled
	}
	switch normalized {
	case models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusCancelled:
	default:
		return nil, NewInvalidArgumentError("Status must be one of: pending, confirmed, canceled")
	}

	booking, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking == nil {
		return nil, NewNotFoundError("Booking not found")
	}

	if err := s.Bookings.UpdateStatus(ctx, id, normalized); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, NewNotFoundError("Booking not found")
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	booking.Status = normalized

	if normalized == models.BookingStatusCancelled {
		if err := s.Slots.ReleaseByKey(ctx, booking.Key()); err != nil {
			return nil, fmt.Errorf("failed to free time slot: %w", err)
		}
	}

	user, err := s.Users.GetByID(ctx, booking.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve booking user: %w", err)
	}
	return &models.BookingDetail{Booking: *booking, User: user}, nil
}

// ListBookings returns bookings with users resolved. User and date filters
// run as store predicates; the slot filter is a value match against the
// slot's time window, excluding cancelled bookings.
func (s *DefaultScheduleService) ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.BookingDetail, error) {
	bookings, err := s.Bookings.List(ctx, filter.UserID, filter.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	if filter.SlotID != "" {
		slot, err := s.Slots.GetByID(ctx, filter.SlotID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch time slot: %w", err)
		}
		if slot != nil {
			key := slot.Key()
			matched := bookings[:0]
			for _, b := range bookings {
				if b.Key() == key && b.Active() {
					matched = append(matched, b)
				}
			}
			bookings = matched
		}
	}

	users := make(map[string]*models.User)
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		if _, ok := users[b.UserID]; !ok {
			users[b.UserID] = nil
			ids = append(ids, b.UserID)
		}
	}
	resolved, err := s.Users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve booking users: %w", err)
	}
	for i := range resolved {
		users[resolved[i].ID] = &resolved[i]
	}

	details := make([]models.BookingDetail, 0, len(bookings))
	for _, b := range bookings {
		details = append(details, models.BookingDetail{Booking: b, User: users[b.UserID]})
	}
	return details, nil
}
