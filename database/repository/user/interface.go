// File: database/repository/user/interface.go
package userRepo

import (
	"context"

	"melodia/database"
	"melodia/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repository is the persistence contract for the user directory.
type Repository interface {
	Insert(ctx context.Context, u models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByAuthUID(ctx context.Context, authUID string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.User, error)
	// List returns users, optionally filtered by auth UID, newest first.
	List(ctx context.Context, authUID string) ([]models.User, error)
	// UpdateFields applies a partial update to the user document.
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	EnsureIndexes() error
}

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo constructs a new MongoDB user Repository.
func NewMongoUserRepo() Repository {
	return &mongoUserRepo{
		coll: database.DB().Collection("users"),
	}
}
