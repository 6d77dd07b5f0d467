// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"

	"melodia/database"
	"melodia/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repository is the persistence contract for bookings. Bookings are never
// hard-deleted; cancellation is a status transition.
type Repository interface {
	Insert(ctx context.Context, b models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// List returns bookings filtered by user and/or date (empty string skips
	// the predicate), ordered by bookingDate descending then startTime.
	List(ctx context.Context, userID, date string) ([]models.Booking, error)
	// FindActiveByUserAndKey returns the user's non-cancelled booking for the
	// tuple, or nil when they hold none.
	FindActiveByUserAndKey(ctx context.Context, userID string, key models.SlotKey) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// CancelByKey transitions every non-cancelled booking matching the tuple
	// to cancelled, reporting how many were touched.
	CancelByKey(ctx context.Context, key models.SlotKey) (int64, error)
	EnsureIndexes() error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB booking Repository.
func NewMongoBookingRepo() Repository {
	return &mongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
}
