package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tutorlane/booking_ledger/internal/model"
)

// LessonStore is the lesson persistence the services need. Lessons are only
// ever created through RequestStore.Accept.
type LessonStore interface {
	GetByID(ctx context.Context, id int64) (*model.Lesson, error)
	GetBySlotID(ctx context.Context, slotID int64) (*model.Lesson, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*model.Lesson, error)
	GetByTeacherID(ctx context.Context, teacherID int64) ([]*model.Lesson, error)
	CountBySlotID(ctx context.Context, slotID int64) (int, error)
}

type LessonService struct {
	lessons LessonStore
	logger  *zap.Logger
}

func NewLessonService(lessons LessonStore, logger *zap.Logger) *LessonService {
	return &LessonService{
		lessons: lessons,
		logger:  logger,
	}
}

// GetByID returns the lesson or ErrNotFound
func (s *LessonService) GetByID(ctx context.Context, id int64) (*model.Lesson, error) {
	lesson, err := s.lessons.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	if lesson == nil {
		return nil, fmt.Errorf("lesson %d: %w", id, model.ErrNotFound)
	}
	return lesson, nil
}

// GetBySlot returns the lesson confirmed for a slot, nil when none exists yet
func (s *LessonService) GetBySlot(ctx context.Context, slotID int64) (*model.Lesson, error) {
	return s.lessons.GetBySlotID(ctx, slotID)
}

// ListByStudent returns all lessons taken by a student
func (s *LessonService) ListByStudent(ctx context.Context, studentID int64) ([]*model.Lesson, error) {
	return s.lessons.GetByStudentID(ctx, studentID)
}

// ListByTeacher returns all lessons given by a teacher
func (s *LessonService) ListByTeacher(ctx context.Context, teacherID int64) ([]*model.Lesson, error) {
	return s.lessons.GetByTeacherID(ctx, teacherID)
}
