package catalog

import (
	"context"
	"errors"
	"testing"

	"melodia/models"
)

type memSubjectRepo struct {
	subjects []models.Subject
}

func (m *memSubjectRepo) Insert(_ context.Context, s models.Subject) error {
	m.subjects = append(m.subjects, s)
	return nil
}

func (m *memSubjectRepo) GetByID(_ context.Context, id string) (*models.Subject, error) {
	for i := range m.subjects {
		if m.subjects[i].ID == id {
			s := m.subjects[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (m *memSubjectRepo) GetByIDs(_ context.Context, ids []string) ([]models.Subject, error) {
	var out []models.Subject
	for _, id := range ids {
		for i := range m.subjects {
			if m.subjects[i].ID == id {
				out = append(out, m.subjects[i])
			}
		}
	}
	return out, nil
}

func (m *memSubjectRepo) List(_ context.Context) ([]models.Subject, error) {
	return m.subjects, nil
}

func (m *memSubjectRepo) EnsureIndexes() error { return nil }

func TestCreateSubject(t *testing.T) {
	repo := &memSubjectRepo{}
	svc := &DefaultCatalogService{Repo: repo} // nil cache disables caching
	ctx := context.Background()

	created, err := svc.CreateSubject(ctx, models.Subject{
		Title:    "Major scales",
		VideoKey: "1aBcDeFgHiJkLmNoPqRsTuVwXyZ012345",
	})
	if err != nil {
		t.Fatalf("CreateSubject: %v", err)
	}
	if created.ID == "" {
		t.Error("subject has no ID")
	}
	if created.KeyPoints == nil {
		t.Error("keyPoints must serialize as an empty array, not null")
	}

	got, err := svc.GetSubject(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetSubject: %v", err)
	}
	if got.Title != "Major scales" {
		t.Errorf("title = %q", got.Title)
	}
}

func TestCreateSubjectValidation(t *testing.T) {
	svc := &DefaultCatalogService{Repo: &memSubjectRepo{}}
	ctx := context.Background()

	if _, err := svc.CreateSubject(ctx, models.Subject{VideoKey: "k"}); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}
	if _, err := svc.CreateSubject(ctx, models.Subject{Title: "t"}); !errors.Is(err, ErrVideoKeyRequired) {
		t.Errorf("expected ErrVideoKeyRequired, got %v", err)
	}
}

func TestGetSubjectNotFound(t *testing.T) {
	svc := &DefaultCatalogService{Repo: &memSubjectRepo{}}

	if _, err := svc.GetSubject(context.Background(), "missing"); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("expected ErrSubjectNotFound, got %v", err)
	}
}

func TestListSubjectsEmpty(t *testing.T) {
	svc := &DefaultCatalogService{Repo: &memSubjectRepo{}}

	subjects, err := svc.ListSubjects(context.Background())
	if err != nil {
		t.Fatalf("ListSubjects: %v", err)
	}
	if subjects == nil || len(subjects) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", subjects)
	}
}
