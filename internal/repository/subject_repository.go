package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorlane/booking_ledger/internal/model"
	"github.com/tutorlane/booking_ledger/internal/repository/base"
)

type SubjectRepository struct {
	pool *pgxpool.Pool
}

func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

// Create inserts a new subject
func (r *SubjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	query := `
		INSERT INTO subjects (name, description, category_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.pool.QueryRow(
		ctx, query,
		subject.Name,
		subject.Description,
		subject.CategoryID,
	).Scan(&subject.ID)

	if err != nil {
		return fmt.Errorf("create subject: %w", err)
	}

	return nil
}

// GetByID returns the subject with its category, nil when there is none
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*model.Subject, error) {
	query := `
		SELECT s.id, s.name, s.description, s.category_id,
		       c.id, c.name, c.description
		FROM subjects s
		JOIN subject_categories c ON c.id = s.category_id
		WHERE s.id = $1
	`

	var subject model.Subject
	var category model.SubjectCategory
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&subject.ID,
		&subject.Name,
		&subject.Description,
		&subject.CategoryID,
		&category.ID,
		&category.Name,
		&category.Description,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subject by id: %w", err)
	}

	subject.Category = &category
	return &subject, nil
}

// ListByCategory returns all subjects in a category
func (r *SubjectRepository) ListByCategory(ctx context.Context, categoryID int64) ([]*model.Subject, error) {
	query := `
		SELECT id, name, description, category_id
		FROM subjects
		WHERE category_id = $1
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list subjects by category: %w", err)
	}
	defer rows.Close()

	var subjects []*model.Subject
	for rows.Next() {
		var subject model.Subject
		err := rows.Scan(&subject.ID, &subject.Name, &subject.Description, &subject.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, &subject)
	}

	return subjects, nil
}
