package classroom

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	classroomRepo "melodia/database/repository/classroom"
	subjectRepo "melodia/database/repository/subject"
	userRepo "melodia/database/repository/user"
	"melodia/models"
	"melodia/utils"
)

const maxJoinCodeAttempts = 20

var (
	ErrClassroomNotFound = errors.New("classroom not found")
	ErrClassNameRequired = errors.New("className is required")
	ErrJoinCodeExhausted = errors.New("failed to generate unique join code")
)

// ClassroomService manages classes, their rosters and lesson assignments.
type ClassroomService interface {
	CreateClassroom(ctx context.Context, className, endDate string) (*models.Classroom, error)
	ListClassrooms(ctx context.Context) ([]models.ClassroomSummary, error)
	GetClassroom(ctx context.Context, id string) (*models.ClassroomDetail, error)
	AddSubject(ctx context.Context, classroomID, subjectID string) error
}

// DefaultClassroomService is the production ClassroomService.
type DefaultClassroomService struct {
	Repo     classroomRepo.Repository
	Users    userRepo.Repository
	Subjects subjectRepo.Repository
	// Rand lets tests pin the join-code sequence.
	Rand *rand.Rand
}

func (s *DefaultClassroomService) randomCode() int {
	if s.Rand != nil {
		return 100000 + s.Rand.Intn(900000)
	}
	return 100000 + rand.Intn(900000)
}

// generateJoinCode draws 6-digit codes until an unused one is found.
func (s *DefaultClassroomService) generateJoinCode(ctx context.Context) (int, error) {
	for attempt := 0; attempt < maxJoinCodeAttempts; attempt++ {
		code := s.randomCode()
		exists, err := s.Repo.JoinCodeExists(ctx, code)
		if err != nil {
			return 0, fmt.Errorf("failed to check join code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return 0, ErrJoinCodeExhausted
}

func (s *DefaultClassroomService) CreateClassroom(ctx context.Context, className, endDate string) (*models.Classroom, error) {
	logger := utils.GetLogger()
	className = strings.TrimSpace(className)
	if className == "" {
		return nil, ErrClassNameRequired
	}

	code, err := s.generateJoinCode(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	classroom := models.Classroom{
		ID:         uuid.New().String(),
		ClassName:  className,
		JoinCode:   code,
		EndDate:    endDate,
		StudentIDs: []string{},
		SubjectIDs: []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.Insert(ctx, classroom); err != nil {
		return nil, fmt.Errorf("failed to create classroom: %w", err)
	}

	logger.Info("Classroom created",
		zap.String("classroomId", classroom.ID),
		zap.String("className", className))
	return &classroom, nil
}

func (s *DefaultClassroomService) ListClassrooms(ctx context.Context) ([]models.ClassroomSummary, error) {
	classrooms, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch classrooms: %w", err)
	}

	summaries := make([]models.ClassroomSummary, 0, len(classrooms))
	for _, c := range classrooms {
		summaries = append(summaries, models.ClassroomSummary{
			ID:            c.ID,
			ClassName:     c.ClassName,
			JoinCode:      c.JoinCode,
			EndDate:       c.EndDate,
			TotalStudents: len(c.StudentIDs),
			SubjectCount:  len(c.SubjectIDs),
			CreatedAt:     c.CreatedAt,
			UpdatedAt:     c.UpdatedAt,
		})
	}
	return summaries, nil
}

func (s *DefaultClassroomService) GetClassroom(ctx context.Context, id string) (*models.ClassroomDetail, error) {
	classroom, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch classroom: %w", err)
	}
	if classroom == nil {
		return nil, ErrClassroomNotFound
	}

	students, err := s.Users.GetByIDs(ctx, classroom.StudentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch classroom students: %w", err)
	}
	subjects, err := s.Subjects.GetByIDs(ctx, classroom.SubjectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch classroom subjects: %w", err)
	}

	return &models.ClassroomDetail{
		Classroom: *classroom,
		Students:  students,
		Subjects:  subjects,
	}, nil
}

func (s *DefaultClassroomService) AddSubject(ctx context.Context, classroomID, subjectID string) error {
	classroom, err := s.Repo.GetByID(ctx, classroomID)
	if err != nil {
		return fmt.Errorf("failed to fetch classroom: %w", err)
	}
	if classroom == nil {
		return ErrClassroomNotFound
	}

	if err := s.Repo.AddSubject(ctx, classroomID, subjectID); err != nil {
		return fmt.Errorf("failed to assign subject to classroom: %w", err)
	}
	return nil
}
