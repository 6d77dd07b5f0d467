package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	subjectRepo "melodia/database/repository/subject"
	"melodia/models"
	"melodia/utils"
)

const subjectListCacheKey = "catalog:subjects"

var (
	ErrSubjectNotFound  = errors.New("subject not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrVideoKeyRequired = errors.New("videoKey is required")
)

// CatalogService serves the public course catalog (video lessons).
type CatalogService interface {
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	GetSubject(ctx context.Context, id string) (*models.Subject, error)
	CreateSubject(ctx context.Context, subject models.Subject) (*models.Subject, error)
}

// DefaultCatalogService caches the subject list in Redis; a nil Cache simply
// disables caching.
type DefaultCatalogService struct {
	Repo     subjectRepo.Repository
	Cache    *redis.Client
	CacheTTL time.Duration
}

func (s *DefaultCatalogService) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	logger := utils.GetLogger()

	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, subjectListCacheKey).Result()
		if err == nil {
			var subjects []models.Subject
			if err := json.Unmarshal([]byte(cached), &subjects); err == nil {
				return subjects, nil
			}
		} else if err != redis.Nil {
			logger.Warn("Subject cache read failed", zap.Error(err))
		}
	}

	subjects, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subjects: %w", err)
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}

	if s.Cache != nil {
		if data, err := json.Marshal(subjects); err == nil {
			ttl := s.CacheTTL
			if ttl <= 0 {
				ttl = 5 * time.Minute
			}
			if err := s.Cache.Set(ctx, subjectListCacheKey, data, ttl).Err(); err != nil {
				logger.Warn("Subject cache write failed", zap.Error(err))
			}
		}
	}
	return subjects, nil
}

func (s *DefaultCatalogService) GetSubject(ctx context.Context, id string) (*models.Subject, error) {
	subject, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subject: %w", err)
	}
	if subject == nil {
		return nil, ErrSubjectNotFound
	}
	return subject, nil
}

func (s *DefaultCatalogService) CreateSubject(ctx context.Context, subject models.Subject) (*models.Subject, error) {
	if subject.Title == "" {
		return nil, ErrTitleRequired
	}
	if subject.VideoKey == "" {
		return nil, ErrVideoKeyRequired
	}

	subject.ID = uuid.New().String()
	now := time.Now()
	subject.CreatedAt = now
	subject.UpdatedAt = now
	if subject.KeyPoints == nil {
		subject.KeyPoints = []string{}
	}

	if err := s.Repo.Insert(ctx, subject); err != nil {
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}

	if s.Cache != nil {
		if err := s.Cache.Del(ctx, subjectListCacheKey).Err(); err != nil {
			utils.GetLogger().Warn("Subject cache invalidation failed", zap.Error(err))
		}
	}
	return &subject, nil
}
