package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorlane/booking_ledger/internal/model"
	"github.com/tutorlane/booking_ledger/internal/repository/base"
)

// LessonTypeRepository stores the lesson-type reference records.
type LessonTypeRepository struct {
	pool *pgxpool.Pool
}

func NewLessonTypeRepository(pool *pgxpool.Pool) *LessonTypeRepository {
	return &LessonTypeRepository{pool: pool}
}

// Create inserts a new lesson type
func (r *LessonTypeRepository) Create(ctx context.Context, lt *model.LessonType) error {
	query := `
		INSERT INTO lesson_types (name, description)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query, lt.Name, lt.Description).Scan(&lt.ID)
	if err != nil {
		return fmt.Errorf("create lesson type: %w", err)
	}

	return nil
}

// GetByID returns the lesson type, nil when there is none
func (r *LessonTypeRepository) GetByID(ctx context.Context, id int64) (*model.LessonType, error) {
	query := `
		SELECT id, name, description
		FROM lesson_types
		WHERE id = $1
	`

	var lt model.LessonType
	err := r.pool.QueryRow(ctx, query, id).Scan(&lt.ID, &lt.Name, &lt.Description)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson type by id: %w", err)
	}

	return &lt, nil
}

// List returns all lesson types
func (r *LessonTypeRepository) List(ctx context.Context) ([]*model.LessonType, error) {
	query := `
		SELECT id, name, description
		FROM lesson_types
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list lesson types: %w", err)
	}
	defer rows.Close()

	var types []*model.LessonType
	for rows.Next() {
		var lt model.LessonType
		if err := rows.Scan(&lt.ID, &lt.Name, &lt.Description); err != nil {
			return nil, fmt.Errorf("scan lesson type: %w", err)
		}
		types = append(types, &lt)
	}

	return types, nil
}

// SubjectCategoryRepository stores the subject-category reference records.
type SubjectCategoryRepository struct {
	pool *pgxpool.Pool
}

func NewSubjectCategoryRepository(pool *pgxpool.Pool) *SubjectCategoryRepository {
	return &SubjectCategoryRepository{pool: pool}
}

// Create inserts a new subject category
func (r *SubjectCategoryRepository) Create(ctx context.Context, sc *model.SubjectCategory) error {
	query := `
		INSERT INTO subject_categories (name, description)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query, sc.Name, sc.Description).Scan(&sc.ID)
	if err != nil {
		return fmt.Errorf("create subject category: %w", err)
	}

	return nil
}

// GetByID returns the subject category, nil when there is none
func (r *SubjectCategoryRepository) GetByID(ctx context.Context, id int64) (*model.SubjectCategory, error) {
	query := `
		SELECT id, name, description
		FROM subject_categories
		WHERE id = $1
	`

	var sc model.SubjectCategory
	err := r.pool.QueryRow(ctx, query, id).Scan(&sc.ID, &sc.Name, &sc.Description)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subject category by id: %w", err)
	}

	return &sc, nil
}

// List returns all subject categories
func (r *SubjectCategoryRepository) List(ctx context.Context) ([]*model.SubjectCategory, error) {
	query := `
		SELECT id, name, description
		FROM subject_categories
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list subject categories: %w", err)
	}
	defer rows.Close()

	var categories []*model.SubjectCategory
	for rows.Next() {
		var sc model.SubjectCategory
		if err := rows.Scan(&sc.ID, &sc.Name, &sc.Description); err != nil {
			return nil, fmt.Errorf("scan subject category: %w", err)
		}
		categories = append(categories, &sc)
	}

	return categories, nil
}

// Delete removes the category; its subjects cascade in the store
func (r *SubjectCategoryRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM subject_categories WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete subject category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("subject category %d: %w", id, model.ErrNotFound)
	}

	return nil
}
