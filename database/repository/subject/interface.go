// File: database/repository/subject/interface.go
package subjectRepo

import (
	"context"

	"melodia/database"
	"melodia/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repository is the persistence contract for the lesson catalog.
type Repository interface {
	Insert(ctx context.Context, s models.Subject) error
	GetByID(ctx context.Context, id string) (*models.Subject, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Subject, error)
	List(ctx context.Context) ([]models.Subject, error)
	EnsureIndexes() error
}

type mongoSubjectRepo struct {
	coll *mongo.Collection
}

// NewMongoSubjectRepo constructs a new MongoDB subject Repository.
func NewMongoSubjectRepo() Repository {
	return &mongoSubjectRepo{
		coll: database.DB().Collection("subjects"),
	}
}
