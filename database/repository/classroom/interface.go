// File: database/repository/classroom/interface.go
package classroomRepo

import (
	"context"

	"melodia/database"
	"melodia/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repository is the persistence contract for classrooms.
type Repository interface {
	Insert(ctx context.Context, c models.Classroom) error
	GetByID(ctx context.Context, id string) (*models.Classroom, error)
	List(ctx context.Context) ([]models.Classroom, error)
	JoinCodeExists(ctx context.Context, code int) (bool, error)
	// AddStudent and RemoveStudent keep the roster array in step with the
	// user's classroomId field; the user service drives both sides.
	AddStudent(ctx context.Context, classroomID, userID string) error
	RemoveStudent(ctx context.Context, classroomID, userID string) error
	AddSubject(ctx context.Context, classroomID, subjectID string) error
	EnsureIndexes() error
}

type mongoClassroomRepo struct {
	coll *mongo.Collection
}

// NewMongoClassroomRepo constructs a new MongoDB classroom Repository.
func NewMongoClassroomRepo() Repository {
	return &mongoClassroomRepo{
		coll: database.DB().Collection("classrooms"),
	}
}
