package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tutorlane/booking_ledger/internal/model"
)

// ReviewStore is the review persistence the service needs.
type ReviewStore interface {
	Create(ctx context.Context, review *model.Review) error
	GetByLessonID(ctx context.Context, lessonID int64) (*model.Review, error)
	GetByTeacherID(ctx context.Context, teacherID int64) ([]*model.Review, error)
}

type ReviewService struct {
	reviews ReviewStore
	lessons LessonStore
	logger  *zap.Logger
}

func NewReviewService(reviews ReviewStore, lessons LessonStore, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		lessons: lessons,
		logger:  logger,
	}
}

// Create writes a review for a completed lesson. The rating bounds are
// checked before touching the store; a second review for the same lesson
// fails with ErrDuplicateReview.
func (s *ReviewService) Create(ctx context.Context, lessonID, studentID, teacherID int64, rating int, comment string) (*model.Review, error) {
	if rating < model.RatingMin || rating > model.RatingMax {
		return nil, model.ErrRatingOutOfRange
	}

	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	if lesson == nil {
		return nil, fmt.Errorf("lesson %d: %w", lessonID, model.ErrNotFound)
	}

	review := &model.Review{
		LessonID:  lessonID,
		StudentID: studentID,
		TeacherID: teacherID,
		Rating:    rating,
		Comment:   comment,
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info("Review created",
		zap.Int64("review_id", review.ID),
		zap.Int64("lesson_id", lessonID),
		zap.Int("rating", rating),
	)

	return review, nil
}

// GetByLesson returns the review for a lesson, nil when none exists
func (s *ReviewService) GetByLesson(ctx context.Context, lessonID int64) (*model.Review, error) {
	return s.reviews.GetByLessonID(ctx, lessonID)
}

// ListByTeacher returns all reviews a teacher has received
func (s *ReviewService) ListByTeacher(ctx context.Context, teacherID int64) ([]*model.Review, error) {
	return s.reviews.GetByTeacherID(ctx, teacherID)
}
