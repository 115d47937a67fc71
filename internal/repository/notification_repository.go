package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorlane/booking_ledger/internal/model"
)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// Create inserts a new unread notification
func (r *NotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	query := `
		INSERT INTO notifications (user_id, message, is_read)
		VALUES ($1, $2, FALSE)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		notification.UserID,
		notification.Message,
	).Scan(&notification.ID, &notification.CreatedAt)

	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	notification.IsRead = false
	return nil
}

// MarkRead flips the read flag. Marking an already-read notification again is
// a no-op, not an error.
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("notification %d: %w", id, model.ErrNotFound)
	}

	return nil
}

// GetByUserID returns all notifications for a user, newest first
func (r *NotificationRepository) GetByUserID(ctx context.Context, userID int64) ([]*model.Notification, error) {
	query := `
		SELECT id, user_id, message, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	return r.queryNotifications(ctx, query, userID)
}

// GetUnreadByUserID returns the unread notifications for a user, oldest first
func (r *NotificationRepository) GetUnreadByUserID(ctx context.Context, userID int64) ([]*model.Notification, error) {
	query := `
		SELECT id, user_id, message, is_read, created_at
		FROM notifications
		WHERE user_id = $1 AND NOT is_read
		ORDER BY created_at ASC
	`

	return r.queryNotifications(ctx, query, userID)
}

func (r *NotificationRepository) queryNotifications(ctx context.Context, query string, args ...interface{}) ([]*model.Notification, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*model.Notification
	for rows.Next() {
		var n model.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}

	return notifications, nil
}
