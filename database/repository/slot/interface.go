// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"

	"melodia/database"
	"melodia/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repository is the persistence contract for time slots.
//
// Lookups that miss return (nil, nil) rather than an error so services can
// translate absence into their own error taxonomy.
type Repository interface {
	CreateMany(ctx context.Context, slots []models.TimeSlot) error
	GetByID(ctx context.Context, id string) (*models.TimeSlot, error)
	// List returns all slots, optionally filtered to one date, ordered by (date, startTime).
	List(ctx context.Context, date string) ([]models.TimeSlot, error)
	// FindByKey returns every slot matching the value tuple, oldest first.
	FindByKey(ctx context.Context, key models.SlotKey) ([]models.TimeSlot, error)
	// Reserve flips isBooked false->true in a single conditional update.
	// It reports false when the slot was already booked (or gone).
	Reserve(ctx context.Context, id string) (bool, error)
	// ReleaseByKey resets isBooked on every slot matching the tuple,
	// including duplicates sharing the window.
	ReleaseByKey(ctx context.Context, key models.SlotKey) error
	DeleteByID(ctx context.Context, id string) error
	EnsureIndexes() error
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB slot Repository.
func NewMongoSlotRepo() Repository {
	return &mongoSlotRepo{
		coll: database.DB().Collection("timeslots"),
	}
}
