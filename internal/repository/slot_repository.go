package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorlane/booking_ledger/internal/model"
	"github.com/tutorlane/booking_ledger/internal/repository/base"
)

type SlotRepository struct {
	pool *pgxpool.Pool
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

// Create inserts a new slot
func (r *SlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	query := `
		INSERT INTO slots (type_id, subject_id, teacher_id, max_students, notes, start_time, end_time, is_active, series_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		slot.TypeID,
		slot.SubjectID,
		slot.TeacherID,
		slot.MaxStudents,
		slot.Notes,
		slot.StartTime,
		slot.EndTime,
		slot.IsActive,
		slot.SeriesID,
	).Scan(&slot.ID, &slot.CreatedAt)

	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

// CreateBatch inserts the slots of a series in one transaction, all or nothing
func (r *SlotRepository) CreateBatch(ctx context.Context, slots []*model.Slot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO slots (type_id, subject_id, teacher_id, max_students, notes, start_time, end_time, is_active, series_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	for _, slot := range slots {
		err := tx.QueryRow(
			ctx, query,
			slot.TypeID,
			slot.SubjectID,
			slot.TeacherID,
			slot.MaxStudents,
			slot.Notes,
			slot.StartTime,
			slot.EndTime,
			slot.IsActive,
			slot.SeriesID,
		).Scan(&slot.ID, &slot.CreatedAt)
		if err != nil {
			return fmt.Errorf("create slot in batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

const slotColumns = `id, type_id, subject_id, teacher_id, max_students, notes, start_time, end_time, is_active, series_id, created_at, updated_at`

func scanSlot(row pgx.Row) (*model.Slot, error) {
	var slot model.Slot
	err := row.Scan(
		&slot.ID,
		&slot.TypeID,
		&slot.SubjectID,
		&slot.TeacherID,
		&slot.MaxStudents,
		&slot.Notes,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsActive,
		&slot.SeriesID,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// GetByID returns the slot, nil when there is none
func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE id = $1
	`

	slot, err := scanSlot(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	return slot, nil
}

// Update rewrites the mutable slot fields
func (r *SlotRepository) Update(ctx context.Context, slot *model.Slot) error {
	query := `
		UPDATE slots
		SET type_id = $1, subject_id = $2, max_students = $3, notes = $4,
		    start_time = $5, end_time = $6, is_active = $7, updated_at = now()
		WHERE id = $8
	`

	result, err := r.pool.Exec(
		ctx, query,
		slot.TypeID,
		slot.SubjectID,
		slot.MaxStudents,
		slot.Notes,
		slot.StartTime,
		slot.EndTime,
		slot.IsActive,
		slot.ID,
	)
	if err != nil {
		return fmt.Errorf("update slot: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot %d: %w", slot.ID, model.ErrNotFound)
	}

	return nil
}

// Deactivate marks the slot inactive without deleting it
func (r *SlotRepository) Deactivate(ctx context.Context, id int64) error {
	query := `
		UPDATE slots
		SET is_active = FALSE, updated_at = now()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate slot: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot %d: %w", id, model.ErrNotFound)
	}

	return nil
}

// GetByTeacherID returns all slots offered by a teacher, newest first
func (r *SlotRepository) GetByTeacherID(ctx context.Context, teacherID int64) ([]*model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE teacher_id = $1
		ORDER BY start_time DESC
	`

	rows, err := r.pool.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get slots by teacher: %w", err)
	}
	defer rows.Close()

	var slots []*model.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// Delete removes the slot; requests and lessons for it cascade in the store
func (r *SlotRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM slots WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot %d: %w", id, model.ErrNotFound)
	}

	return nil
}
