package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/tutorlane/booking_ledger/internal/model"
)

// NotificationStore is the notification persistence the service needs.
type NotificationStore interface {
	Create(ctx context.Context, notification *model.Notification) error
	MarkRead(ctx context.Context, id int64) error
	GetByUserID(ctx context.Context, userID int64) ([]*model.Notification, error)
	GetUnreadByUserID(ctx context.Context, userID int64) ([]*model.Notification, error)
}

type NotificationService struct {
	notifications NotificationStore
	logger        *zap.Logger
}

func NewNotificationService(notifications NotificationStore, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		logger:        logger,
	}
}

// Notify records an unread notification for the user. Delivery is someone
// else's job; this only persists the record.
func (s *NotificationService) Notify(ctx context.Context, userID int64, message string) (*model.Notification, error) {
	notification := &model.Notification{
		UserID:  userID,
		Message: message,
	}

	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, err
	}

	s.logger.Debug("Notification created",
		zap.Int64("notification_id", notification.ID),
		zap.Int64("user_id", userID),
	)

	return notification, nil
}

// MarkRead flips the read flag; marking again is a no-op
func (s *NotificationService) MarkRead(ctx context.Context, id int64) error {
	return s.notifications.MarkRead(ctx, id)
}

// ListUnread returns the user's unread notifications
func (s *NotificationService) ListUnread(ctx context.Context, userID int64) ([]*model.Notification, error) {
	return s.notifications.GetUnreadByUserID(ctx, userID)
}

// List returns all of the user's notifications
func (s *NotificationService) List(ctx context.Context, userID int64) ([]*model.Notification, error) {
	return s.notifications.GetByUserID(ctx, userID)
}
