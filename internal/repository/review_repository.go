package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorlane/booking_ledger/internal/model"
	"github.com/tutorlane/booking_ledger/internal/repository/base"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts a new review. The lesson_id uniqueness lives in the store,
// so two concurrent reviews for one lesson cannot both succeed.
func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (lesson_id, student_id, teacher_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		review.LessonID,
		review.StudentID,
		review.TeacherID,
		review.Rating,
		review.Comment,
	).Scan(&review.ID, &review.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err, "reviews_lesson_id_key") {
			return model.ErrDuplicateReview
		}
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

const reviewColumns = `id, lesson_id, student_id, teacher_id, rating, comment, created_at`

func scanReview(row pgx.Row) (*model.Review, error) {
	var review model.Review
	err := row.Scan(
		&review.ID,
		&review.LessonID,
		&review.StudentID,
		&review.TeacherID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// GetByID returns the review, nil when there is none
func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE id = $1
	`

	review, err := scanReview(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get review by id: %w", err)
	}

	return review, nil
}

// GetByLessonID returns the review written for a lesson, nil when there is none
func (r *ReviewRepository) GetByLessonID(ctx context.Context, lessonID int64) (*model.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE lesson_id = $1
	`

	review, err := scanReview(r.pool.QueryRow(ctx, query, lessonID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get review by lesson: %w", err)
	}

	return review, nil
}

// GetByTeacherID returns all reviews received by a teacher, newest first
func (r *ReviewRepository) GetByTeacherID(ctx context.Context, teacherID int64) ([]*model.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE teacher_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get reviews by teacher: %w", err)
	}
	defer rows.Close()

	var reviews []*model.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, nil
}
