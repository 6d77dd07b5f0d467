package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	classroomRepo "melodia/database/repository/classroom"
	subjectRepo "melodia/database/repository/subject"
	userRepo "melodia/database/repository/user"
	"melodia/models"
	"melodia/utils"
)

// UserService is the user directory: auth-provider sync, payment flag and
// classroom assignment.
type UserService interface {
	ListUsers(ctx context.Context, authUID string) ([]models.UserDetail, error)
	UpdateUser(ctx context.Context, id string, update models.UserUpdate) (*models.UserDetail, error)
	UpsertFromAuthEvent(ctx context.Context, ev models.AuthEvent) (*models.User, error)
}

// DefaultUserService is the production UserService.
type DefaultUserService struct {
	Repo       userRepo.Repository
	Classrooms classroomRepo.Repository
	Subjects   subjectRepo.Repository
}

// ListUsers returns users (optionally filtered by auth UID) with their
// classroom and its subjects populated.
func (s *DefaultUserService) ListUsers(ctx context.Context, authUID string) ([]models.UserDetail, error) {
	users, err := s.Repo.List(ctx, authUID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	details := make([]models.UserDetail, 0, len(users))
	for _, u := range users {
		detail, err := s.populate(ctx, u)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *DefaultUserService) populate(ctx context.Context, u models.User) (*models.UserDetail, error) {
	detail := models.UserDetail{User: u}
	if u.ClassroomID == "" {
		return &detail, nil
	}
	classroom, err := s.Classrooms.GetByID(ctx, u.ClassroomID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch classroom: %w", err)
	}
	if classroom == nil {
		return &detail, nil
	}
	detail.Classroom = classroom
	detail.ClassName = classroom.ClassName

	subjects, err := s.Subjects.GetByIDs(ctx, classroom.SubjectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch classroom subjects: %w", err)
	}
	detail.Subjects = subjects
	return &detail, nil
}

// UpdateUser applies admin edits: payment flag, FCM token, and classroom
// assignment. A classroom move removes the user from the old roster and adds
// them to the new one; an empty classroomId just removes.
func (s *DefaultUserService) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (*models.UserDetail, error) {
	logger := utils.GetLogger()

	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if existing == nil {
		// Admin pages sometimes address users by auth UID.
		existing, err = s.Repo.GetByAuthUID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch user: %w", err)
		}
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	fields := map[string]any{}
	if update.IsPaid != nil {
		fields["isPaid"] = *update.IsPaid
	}
	if update.FCMToken != nil {
		fields["fcmToken"] = *update.FCMToken
	}

	if update.ClassroomID != nil {
		next := *update.ClassroomID
		if next != "" {
			classroom, err := s.Classrooms.GetByID(ctx, next)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch classroom: %w", err)
			}
			if classroom == nil {
				return nil, ErrClassroomNotFound
			}
		}
		if existing.ClassroomID != "" && existing.ClassroomID != next {
			if err := s.Classrooms.RemoveStudent(ctx, existing.ClassroomID, existing.ID); err != nil {
				logger.Warn("Failed to remove user from previous classroom roster",
					zap.String("userId", existing.ID), zap.Error(err))
			}
		}
		if next != "" && existing.ClassroomID != next {
			if err := s.Classrooms.AddStudent(ctx, next, existing.ID); err != nil {
				return nil, fmt.Errorf("failed to add user to classroom roster: %w", err)
			}
		}
		fields["classroomId"] = next
	}

	if len(fields) == 0 {
		return nil, ErrNoUpdatableFields
	}

	if err := s.Repo.UpdateFields(ctx, existing.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	updated, err := s.Repo.GetByID(ctx, existing.ID)
	if err != nil || updated == nil {
		return nil, fmt.Errorf("failed to fetch updated user: %w", err)
	}
	return s.populate(ctx, *updated)
}

// UpsertFromAuthEvent syncs a user record from an auth-provider webhook.
func (s *DefaultUserService) UpsertFromAuthEvent(ctx context.Context, ev models.AuthEvent) (*models.User, error) {
	if ev.UID == "" {
		return nil, ErrMissingAuthUID
	}

	existing, err := s.Repo.GetByAuthUID(ctx, ev.UID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing == nil {
		u := models.User{
			ID:        uuid.New().String(),
			AuthUID:   ev.UID,
			Email:     ev.Email,
			FirstName: ev.FirstName,
			LastName:  ev.LastName,
			Photo:     ev.Photo,
		}
		if err := s.Repo.Insert(ctx, u); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return &u, nil
	}

	fields := map[string]any{}
	if ev.Email != "" {
		fields["email"] = ev.Email
	}
	if ev.FirstName != "" {
		fields["firstName"] = ev.FirstName
	}
	if ev.LastName != "" {
		fields["lastName"] = ev.LastName
	}
	if ev.Photo != "" {
		fields["photo"] = ev.Photo
	}
	if len(fields) > 0 {
		if err := s.Repo.UpdateFields(ctx, existing.ID, fields); err != nil {
			return nil, fmt.Errorf("failed to sync user: %w", err)
		}
	}
	return s.Repo.GetByID(ctx, existing.ID)
}
