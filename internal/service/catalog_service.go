package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tutorlane/booking_ledger/internal/model"
)

// Catalog stores for the flat reference records.
type LessonTypeStore interface {
	Create(ctx context.Context, lt *model.LessonType) error
	GetByID(ctx context.Context, id int64) (*model.LessonType, error)
	List(ctx context.Context) ([]*model.LessonType, error)
}

type SubjectCategoryStore interface {
	Create(ctx context.Context, sc *model.SubjectCategory) error
	GetByID(ctx context.Context, id int64) (*model.SubjectCategory, error)
	List(ctx context.Context) ([]*model.SubjectCategory, error)
	Delete(ctx context.Context, id int64) error
}

type SubjectStore interface {
	Create(ctx context.Context, subject *model.Subject) error
	GetByID(ctx context.Context, id int64) (*model.Subject, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*model.Subject, error)
}

// CatalogService manages the reference data: lesson types, subject categories
// and subjects.
type CatalogService struct {
	types      LessonTypeStore
	categories SubjectCategoryStore
	subjects   SubjectStore
	logger     *zap.Logger
}

func NewCatalogService(
	types LessonTypeStore,
	categories SubjectCategoryStore,
	subjects SubjectStore,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		types:      types,
		categories: categories,
		subjects:   subjects,
		logger:     logger,
	}
}

// CreateLessonType adds a lesson type (offline, online, hybrid)
func (s *CatalogService) CreateLessonType(ctx context.Context, name, description string) (*model.LessonType, error) {
	lt := &model.LessonType{Name: name, Description: description}
	if err := s.types.Create(ctx, lt); err != nil {
		return nil, err
	}
	return lt, nil
}

// CreateSubjectCategory adds a subject category
func (s *CatalogService) CreateSubjectCategory(ctx context.Context, name, description string) (*model.SubjectCategory, error) {
	sc := &model.SubjectCategory{Name: name, Description: description}
	if err := s.categories.Create(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// CreateSubject adds a subject under an existing category
func (s *CatalogService) CreateSubject(ctx context.Context, name, description string, categoryID int64) (*model.Subject, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("subject category %d: %w", categoryID, model.ErrNotFound)
	}

	subject := &model.Subject{Name: name, Description: description, CategoryID: categoryID}
	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, err
	}

	subject.Category = category
	return subject, nil
}

// GetSubject returns the subject or ErrNotFound
func (s *CatalogService) GetSubject(ctx context.Context, id int64) (*model.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get subject: %w", err)
	}
	if subject == nil {
		return nil, fmt.Errorf("subject %d: %w", id, model.ErrNotFound)
	}
	return subject, nil
}

// ListLessonTypes returns all lesson types
func (s *CatalogService) ListLessonTypes(ctx context.Context) ([]*model.LessonType, error) {
	return s.types.List(ctx)
}

// ListSubjectCategories returns all subject categories
func (s *CatalogService) ListSubjectCategories(ctx context.Context) ([]*model.SubjectCategory, error) {
	return s.categories.List(ctx)
}

// ListSubjects returns all subjects in a category
func (s *CatalogService) ListSubjects(ctx context.Context, categoryID int64) ([]*model.Subject, error) {
	return s.subjects.ListByCategory(ctx, categoryID)
}

// DeleteSubjectCategory removes a category; its subjects cascade in the store
func (s *CatalogService) DeleteSubjectCategory(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Subject category deleted", zap.Int64("category_id", id))
	return nil
}
