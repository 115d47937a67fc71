package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorlane/booking_ledger/internal/model"
	"github.com/tutorlane/booking_ledger/internal/repository/base"
)

type LessonRepository struct {
	pool *pgxpool.Pool
}

func NewLessonRepository(pool *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{pool: pool}
}

const lessonColumns = `id, slot_id, teacher_id, student_id, confirmed_at`

func scanLesson(row pgx.Row) (*model.Lesson, error) {
	var lesson model.Lesson
	err := row.Scan(
		&lesson.ID,
		&lesson.SlotID,
		&lesson.TeacherID,
		&lesson.StudentID,
		&lesson.ConfirmedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// GetByID returns the lesson, nil when there is none
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*model.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE id = $1
	`

	lesson, err := scanLesson(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson by id: %w", err)
	}

	return lesson, nil
}

// GetBySlotID returns the lesson confirmed for a slot, nil when there is none
func (r *LessonRepository) GetBySlotID(ctx context.Context, slotID int64) (*model.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE slot_id = $1
	`

	lesson, err := scanLesson(r.pool.QueryRow(ctx, query, slotID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson by slot: %w", err)
	}

	return lesson, nil
}

// GetByStudentID returns all lessons taken by a student, newest first
func (r *LessonRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*model.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE student_id = $1
		ORDER BY confirmed_at DESC
	`

	return r.queryLessons(ctx, query, studentID)
}

// GetByTeacherID returns all lessons given by a teacher, newest first
func (r *LessonRepository) GetByTeacherID(ctx context.Context, teacherID int64) ([]*model.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE teacher_id = $1
		ORDER BY confirmed_at DESC
	`

	return r.queryLessons(ctx, query, teacherID)
}

func (r *LessonRepository) queryLessons(ctx context.Context, query string, args ...interface{}) ([]*model.Lesson, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []*model.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	return lessons, nil
}

// CountBySlotID returns how many lessons are confirmed for a slot
func (r *LessonRepository) CountBySlotID(ctx context.Context, slotID int64) (int, error) {
	query := `SELECT COUNT(*) FROM lessons WHERE slot_id = $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, slotID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count lessons by slot: %w", err)
	}

	return count, nil
}
