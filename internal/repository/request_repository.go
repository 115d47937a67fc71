package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorlane/booking_ledger/internal/model"
	"github.com/tutorlane/booking_ledger/internal/repository/base"
)

type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

// Create inserts a new pending request. The (slot_id, student_id) uniqueness
// lives in the store, so concurrent duplicate attempts cannot both succeed.
func (r *RequestRepository) Create(ctx context.Context, request *model.Request) error {
	query := `
		INSERT INTO requests (slot_id, student_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		request.SlotID,
		request.StudentID,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err, "requests_slot_student_key") {
			return model.ErrDuplicateRequest
		}
		return fmt.Errorf("create request: %w", err)
	}

	return nil
}

const requestColumns = `id, slot_id, student_id, status, created_at, updated_at`

func scanRequest(row pgx.Row) (*model.Request, error) {
	var request model.Request
	err := row.Scan(
		&request.ID,
		&request.SlotID,
		&request.StudentID,
		&request.Status,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// GetByID returns the request, nil when there is none
func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*model.Request, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM requests
		WHERE id = $1
	`

	request, err := scanRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request by id: %w", err)
	}

	return request, nil
}

// GetBySlotID returns all requests filed for a slot, oldest first
func (r *RequestRepository) GetBySlotID(ctx context.Context, slotID int64) ([]*model.Request, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM requests
		WHERE slot_id = $1
		ORDER BY created_at ASC
	`

	return r.queryRequests(ctx, query, slotID)
}

// GetByStudentID returns all requests filed by a student, newest first
func (r *RequestRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*model.Request, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM requests
		WHERE student_id = $1
		ORDER BY created_at DESC
	`

	return r.queryRequests(ctx, query, studentID)
}

func (r *RequestRepository) queryRequests(ctx context.Context, query string, args ...interface{}) ([]*model.Request, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	defer rows.Close()

	var requests []*model.Request
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		requests = append(requests, request)
	}

	return requests, nil
}

// Accept decides the request inside one transaction. The slot row is locked
// first, so accept decisions for the same slot serialize: the capacity check
// and the lesson insert cannot interleave with another accept. Returns
// ErrInvalidTransition when the request is no longer pending and ErrSlotFull
// when the slot's confirmed lessons already reach max_students.
func (r *RequestRepository) Accept(ctx context.Context, requestID int64) (*model.Lesson, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var slotID, studentID int64
	err = tx.QueryRow(ctx, `
		SELECT slot_id, student_id
		FROM requests
		WHERE id = $1
	`, requestID).Scan(&slotID, &studentID)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, fmt.Errorf("request %d: %w", requestID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("get request: %w", err)
	}

	var teacherID int64
	var maxStudents int
	err = tx.QueryRow(ctx, `
		SELECT teacher_id, max_students
		FROM slots
		WHERE id = $1
		FOR UPDATE
	`, slotID).Scan(&teacherID, &maxStudents)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, fmt.Errorf("slot %d: %w", slotID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("lock slot: %w", err)
	}

	// Lock the request row as well. Reject never touches the slot row, so the
	// slot lock alone cannot order an accept against a concurrent reject.
	var status model.RequestStatus
	err = tx.QueryRow(ctx, `
		SELECT status FROM requests WHERE id = $1 FOR UPDATE
	`, requestID).Scan(&status)
	if err != nil {
		return nil, fmt.Errorf("reread request status: %w", err)
	}
	if status != model.RequestStatusPending {
		return nil, model.ErrInvalidTransition
	}

	var lessonCount int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM lessons WHERE slot_id = $1
	`, slotID).Scan(&lessonCount)
	if err != nil {
		return nil, fmt.Errorf("count lessons: %w", err)
	}
	if lessonCount >= maxStudents {
		return nil, model.ErrSlotFull
	}

	// The status guard backs up the row lock: whatever won the race, a
	// request that is no longer pending must not be overwritten.
	tag, err := tx.Exec(ctx, `
		UPDATE requests
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`, model.RequestStatusAccepted, requestID, model.RequestStatusPending)
	if err != nil {
		return nil, fmt.Errorf("update request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrInvalidTransition
	}

	lesson := &model.Lesson{
		SlotID:    slotID,
		TeacherID: teacherID,
		StudentID: studentID,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO lessons (slot_id, teacher_id, student_id)
		VALUES ($1, $2, $3)
		RETURNING id, confirmed_at
	`, lesson.SlotID, lesson.TeacherID, lesson.StudentID).Scan(&lesson.ID, &lesson.ConfirmedAt)
	if err != nil {
		// The unique index on lessons.slot_id is the hard backstop against
		// double-booking, whatever max_students says.
		if base.IsUniqueViolation(err, "lessons_slot_id_key") {
			return nil, model.ErrSlotFull
		}
		return nil, fmt.Errorf("create lesson: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return lesson, nil
}

// Reject moves a pending request to rejected. Returns ErrInvalidTransition
// when the request exists but is no longer pending.
func (r *RequestRepository) Reject(ctx context.Context, requestID int64) error {
	query := `
		UPDATE requests
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`

	result, err := r.pool.Exec(ctx, query, model.RequestStatusRejected, requestID, model.RequestStatusPending)
	if err != nil {
		return fmt.Errorf("reject request: %w", err)
	}

	if result.RowsAffected() == 0 {
		request, err := r.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return fmt.Errorf("request %d: %w", requestID, model.ErrNotFound)
		}
		return model.ErrInvalidTransition
	}

	return nil
}
