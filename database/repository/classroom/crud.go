// File: database/repository/classroom/crud.go
package classroomRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"melodia/models"
)

func (r *mongoClassroomRepo) Insert(ctx context.Context, c models.Classroom) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.StudentIDs == nil {
		c.StudentIDs = []string{}
	}
	if c.SubjectIDs == nil {
		c.SubjectIDs = []string{}
	}
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, c)
	return err
}

func (r *mongoClassroomRepo) GetByID(ctx context.Context, id string) (*models.Classroom, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c models.Classroom
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *mongoClassroomRepo) List(ctx context.Context) ([]models.Classroom, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var classrooms []models.Classroom
	if err := cursor.All(ctx, &classrooms); err != nil {
		return nil, err
	}
	return classrooms, nil
}

func (r *mongoClassroomRepo) JoinCodeExists(ctx context.Context, code int) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"joinCode": code})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *mongoClassroomRepo) AddStudent(ctx context.Context, classroomID, userID string) error {
	return r.updateRoster(ctx, classroomID, bson.M{"$addToSet": bson.M{"students": userID}})
}

func (r *mongoClassroomRepo) RemoveStudent(ctx context.Context, classroomID, userID string) error {
	return r.updateRoster(ctx, classroomID, bson.M{"$pull": bson.M{"students": userID}})
}

func (r *mongoClassroomRepo) AddSubject(ctx context.Context, classroomID, subjectID string) error {
	return r.updateRoster(ctx, classroomID, bson.M{"$addToSet": bson.M{"subjects": subjectID}})
}

func (r *mongoClassroomRepo) updateRoster(ctx context.Context, classroomID string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update["$set"] = bson.M{"updatedAt": time.Now()}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": classroomID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
