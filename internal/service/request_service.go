package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/tutorlane/booking_ledger/internal/model"
	"github.com/tutorlane/booking_ledger/internal/repository/base"
)

// RequestStore is the request persistence the service needs. Accept runs the
// whole decision in one store transaction.
type RequestStore interface {
	Create(ctx context.Context, request *model.Request) error
	GetByID(ctx context.Context, id int64) (*model.Request, error)
	GetBySlotID(ctx context.Context, slotID int64) ([]*model.Request, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*model.Request, error)
	Accept(ctx context.Context, requestID int64) (*model.Lesson, error)
	Reject(ctx context.Context, requestID int64) error
}

const acceptMaxRetries = 3

type RequestService struct {
	requests      RequestStore
	slots         SlotStore
	notifications *NotificationService
	logger        *zap.Logger
}

func NewRequestService(
	requests RequestStore,
	slots SlotStore,
	notifications *NotificationService,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests:      requests,
		slots:         slots,
		notifications: notifications,
		logger:        logger,
	}
}

// Create files a pending request for a slot. A student gets at most one
// request per slot, ever; a duplicate fails with ErrDuplicateRequest.
func (s *RequestService) Create(ctx context.Context, slotID, studentID int64) (*model.Request, error) {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return nil, fmt.Errorf("slot %d: %w", slotID, model.ErrNotFound)
	}
	if !slot.IsActive {
		return nil, model.ErrSlotInactive
	}

	request := &model.Request{
		SlotID:    slotID,
		StudentID: studentID,
		Status:    model.RequestStatusPending,
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	if _, err := s.notifications.Notify(ctx, slot.TeacherID, "You have a new lesson request"); err != nil {
		s.logger.Warn("Failed to notify teacher", zap.Error(err))
	}

	s.logger.Info("Lesson request created",
		zap.Int64("request_id", request.ID),
		zap.Int64("slot_id", slotID),
		zap.Int64("student_id", studentID),
	)

	return request, nil
}

// Accept confirms a pending request, producing the lesson. The store
// transaction serializes accept decisions per slot; when it loses a race it
// is retried a few times and then surfaced as ErrConcurrentModification.
func (s *RequestService) Accept(ctx context.Context, requestID int64) (*model.Lesson, error) {
	var lesson *model.Lesson

	backoff := retry.WithMaxRetries(acceptMaxRetries, retry.NewFibonacci(10*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		l, err := s.requests.Accept(ctx, requestID)
		if err != nil {
			if base.IsSerializationFailure(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		lesson = l
		return nil
	})
	if err != nil {
		if base.IsSerializationFailure(err) {
			return nil, fmt.Errorf("accept request %d: %w", requestID, model.ErrConcurrentModification)
		}
		return nil, err
	}

	if _, err := s.notifications.Notify(ctx, lesson.StudentID, "Your lesson request was accepted"); err != nil {
		s.logger.Warn("Failed to notify student", zap.Error(err))
	}

	s.logger.Info("Lesson request accepted",
		zap.Int64("request_id", requestID),
		zap.Int64("lesson_id", lesson.ID),
		zap.Int64("slot_id", lesson.SlotID),
		zap.Int64("student_id", lesson.StudentID),
	)

	return lesson, nil
}

// Reject declines a pending request. Terminal states stay terminal: a second
// decision fails with ErrInvalidTransition.
func (s *RequestService) Reject(ctx context.Context, requestID int64) error {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("get request: %w", err)
	}
	if request == nil {
		return fmt.Errorf("request %d: %w", requestID, model.ErrNotFound)
	}

	if err := s.requests.Reject(ctx, requestID); err != nil {
		return err
	}

	if _, err := s.notifications.Notify(ctx, request.StudentID, "Your lesson request was rejected"); err != nil {
		s.logger.Warn("Failed to notify student", zap.Error(err))
	}

	s.logger.Info("Lesson request rejected",
		zap.Int64("request_id", requestID),
		zap.Int64("student_id", request.StudentID),
	)

	return nil
}

// GetByID returns the request or ErrNotFound
func (s *RequestService) GetByID(ctx context.Context, id int64) (*model.Request, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	if request == nil {
		return nil, fmt.Errorf("request %d: %w", id, model.ErrNotFound)
	}
	return request, nil
}

// ListBySlot returns all requests filed for a slot
func (s *RequestService) ListBySlot(ctx context.Context, slotID int64) ([]*model.Request, error) {
	return s.requests.GetBySlotID(ctx, slotID)
}

// ListByStudent returns all requests filed by a student
func (s *RequestService) ListByStudent(ctx context.Context, studentID int64) ([]*model.Request, error) {
	return s.requests.GetByStudentID(ctx, studentID)
}
