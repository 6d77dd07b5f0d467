package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"melodia/models"
	"melodia/utils"
)

// ListSlots returns all slots, optionally filtered to one date,
// ordered by (date, startTime).
func (s *DefaultScheduleService) ListSlots(ctx context.Context, date string) ([]models.TimeSlot, error) {
	if date != "" && !ValidDate(date) {
		return nil, NewInvalidArgumentError("Invalid date format. Use YYYY-MM-DD")
	}
	slots, err := s.Slots.List(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch time slots: %w", err)
	}
	if slots == nil {
		slots = []models.TimeSlot{}
	}
	return slots, nil
}

// CreateSlots persists a batch of slots, silently skipping entries whose
// (date, startTime, endTime) tuple already exists. A structurally invalid
// entry fails the whole batch; duplicates never do.
func (s *DefaultScheduleService) CreateSlots(ctx context.Context, entries []models.SlotInput) ([]models.TimeSlot, error) {
	logger := utils.GetLogger()
	if len(entries) == 0 {
		return nil, NewInvalidArgumentError("Slots array is required")
	}

	now := time.Now()
	seen := make(map[models.SlotKey]bool, len(entries))
	var validated []models.TimeSlot
	for _, e := range entries {
		if e.Date == "" || e.StartTime == "" || e.EndTime == "" {
			return nil, NewInvalidArgumentError("Each slot must have date, startTime, and endTime")
		}
		if !ValidDate(e.Date) || !ValidTime(e.StartTime) || !ValidTime(e.EndTime) {
			return nil, NewInvalidArgumentError("Slot fields must be YYYY-MM-DD and HH:mm")
		}
		if e.EndTime <= e.StartTime {
			return nil, NewInvalidArgumentError("endTime must be after startTime")
		}

		key := models.SlotKey{Date: e.Date, StartTime: e.StartTime, EndTime: e.EndTime}
		if seen[key] {
			continue
		}
		seen[key] = true

		existing, err := s.Slots.FindByKey(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing slots: %w", err)
		}
		if len(existing) > 0 {
			continue // skip duplicates
		}

		validated = append(validated, models.TimeSlot{
			ID:        uuid.New().String(),
			Date:      e.Date,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
			IsBooked:  false,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if len(validated) == 0 {
		return nil, NewInvalidArgumentError("All slots already exist")
	}

	if err := s.Slots.CreateMany(ctx, validated); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, NewConflictError("Some slots already exist")
		}
		return nil, fmt.Errorf("failed to create time slots: %w", err)
	}

	logger.Info("Created time slots", zap.Int("count", len(validated)))
	return validated, nil
}

// DeleteSlot removes a slot. If the slot is currently booked, every
// non-cancelled booking matching its time window is cancelled first.
func (s *DefaultScheduleService) DeleteSlot(ctx context.Context, id string) error {
	logger := utils.GetLogger()
	if id == "" {
		return NewInvalidArgumentError("Time slot ID is required")
	}

	slot, err := s.Slots.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch time slot: %w", err)
	}
	if slot == nil {
		return NewNotFoundError("Time slot not found")
	}

	if slot.IsBooked {
		cancelled, err := s.Bookings.CancelByKey(ctx, slot.Key())
		if err != nil {
			return fmt.Errorf("failed to cancel bookings for slot: %w", err)
		}
		if cancelled > 0 {
			logger.Info("Cancelled bookings for deleted slot",
				zap.String("slotId", id), zap.Int64("cancelled", cancelled))
		}
	}

	if err := s.Slots.DeleteByID(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			return NewNotFoundError("Time slot not found")
		}
		return fmt.Errorf("failed to delete time slot: %w", err)
	}
	return nil
}

// DeleteDuplicates repairs a duplicated (date, startTime, endTime) group:
// the oldest slot wins, the rest are removed after their bookings are
// cancelled. Running it again on the same tuple reports zero deletions.
func (s *DefaultScheduleService) DeleteDuplicates(ctx context.Context, key models.SlotKey) (*models.DuplicateReport, error) {
	logger := utils.GetLogger()
	if key.Date == "" || key.StartTime == "" || key.EndTime == "" {
		return nil, NewInvalidArgumentError("Date, startTime, and endTime are required")
	}

	group, err := s.Slots.FindByKey(ctx, key) // oldest first
	if err != nil {
		return nil, fmt.Errorf("failed to fetch duplicate slots: %w", err)
	}
	if len(group) <= 1 {
		return &models.DuplicateReport{Deleted: 0, DeletedIDs: []string{}}, nil
	}

	report := &models.DuplicateReport{
		DeletedIDs: []string{},
		KeptSlotID: group[0].ID,
	}
	var cancelled int64
	for _, dup := range group[1:] {
		if dup.IsBooked {
			n, err := s.Bookings.CancelByKey(ctx, key)
			if err != nil {
				return nil, fmt.Errorf("failed to cancel bookings for duplicate slot: %w", err)
			}
			cancelled += n
		}
		if err := s.Slots.DeleteByID(ctx, dup.ID); err != nil && err != mongo.ErrNoDocuments {
			return nil, fmt.Errorf("failed to delete duplicate slot: %w", err)
		}
		report.DeletedIDs = append(report.DeletedIDs, dup.ID)
	}
	report.Deleted = len(report.DeletedIDs)

	// CancelByKey sweeps every booking on the window, the kept slot's
	// included, so any cancellation leaves the kept slot without an active
	// booking. Release it to keep isBooked honest.
	if cancelled > 0 {
		if err := s.Slots.ReleaseByKey(ctx, key); err != nil {
			return nil, fmt.Errorf("failed to free kept slot: %w", err)
		}
	}

	logger.Info("Reconciled duplicate slots",
		zap.String("date", key.Date),
		zap.String("startTime", key.StartTime),
		zap.Int("deleted", report.Deleted),
		zap.String("kept", report.KeptSlotID))
	return report, nil
}
