package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tutorlane/booking_ledger/internal/model"
)

// SlotStore is the slot persistence the services need.
type SlotStore interface {
	Create(ctx context.Context, slot *model.Slot) error
	CreateBatch(ctx context.Context, slots []*model.Slot) error
	GetByID(ctx context.Context, id int64) (*model.Slot, error)
	Update(ctx context.Context, slot *model.Slot) error
	Deactivate(ctx context.Context, id int64) error
	GetByTeacherID(ctx context.Context, teacherID int64) ([]*model.Slot, error)
}

type SlotService struct {
	slots  SlotStore
	users  UserStore
	logger *zap.Logger
}

func NewSlotService(slots SlotStore, users UserStore, logger *zap.Logger) *SlotService {
	return &SlotService{
		slots:  slots,
		users:  users,
		logger: logger,
	}
}

// validate enforces the slot invariants. Runs before every persist, not only
// on create: the teacher's role may have changed since the slot was made.
func (s *SlotService) validate(ctx context.Context, slot *model.Slot) error {
	if !slot.EndTime.After(slot.StartTime) {
		return model.ErrInvalidTimeRange
	}
	if slot.MaxStudents < 1 {
		return model.ErrInvalidCapacity
	}

	teacher, err := s.users.GetByID(ctx, slot.TeacherID)
	if err != nil {
		return fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return fmt.Errorf("teacher %d: %w", slot.TeacherID, model.ErrNotFound)
	}
	if !teacher.IsTeacher() {
		return model.ErrUnauthorizedTeacher
	}

	return nil
}

// Create validates and persists a new slot
func (s *SlotService) Create(ctx context.Context, slot *model.Slot) (*model.Slot, error) {
	if slot.MaxStudents == 0 {
		slot.MaxStudents = 1
	}
	slot.IsActive = true

	if err := s.validate(ctx, slot); err != nil {
		return nil, err
	}

	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, err
	}

	s.logger.Info("Slot created",
		zap.Int64("slot_id", slot.ID),
		zap.Int64("teacher_id", slot.TeacherID),
		zap.Time("start_time", slot.StartTime),
	)

	return slot, nil
}

// CreateWeeklySeries validates the first slot and persists weekly copies of
// it, all sharing a fresh series id.
func (s *SlotService) CreateWeeklySeries(ctx context.Context, slot *model.Slot, weeks int) ([]*model.Slot, error) {
	if weeks < 1 {
		return nil, fmt.Errorf("weeks must be at least 1, got %d", weeks)
	}

	if slot.MaxStudents == 0 {
		slot.MaxStudents = 1
	}
	slot.IsActive = true

	if err := s.validate(ctx, slot); err != nil {
		return nil, err
	}

	seriesID := uuid.New()
	slots := make([]*model.Slot, 0, weeks)
	for i := 0; i < weeks; i++ {
		week := *slot
		week.SeriesID = &seriesID
		week.StartTime = slot.StartTime.AddDate(0, 0, 7*i)
		week.EndTime = slot.EndTime.AddDate(0, 0, 7*i)
		slots = append(slots, &week)
	}

	if err := s.slots.CreateBatch(ctx, slots); err != nil {
		return nil, err
	}

	s.logger.Info("Weekly slot series created",
		zap.String("series_id", seriesID.String()),
		zap.Int64("teacher_id", slot.TeacherID),
		zap.Int("weeks", weeks),
	)

	return slots, nil
}

// Update re-validates and persists the slot
func (s *SlotService) Update(ctx context.Context, slot *model.Slot) error {
	if err := s.validate(ctx, slot); err != nil {
		return err
	}

	return s.slots.Update(ctx, slot)
}

// Deactivate marks the slot inactive; existing requests and lessons stay
func (s *SlotService) Deactivate(ctx context.Context, slotID int64) error {
	if err := s.slots.Deactivate(ctx, slotID); err != nil {
		return err
	}

	s.logger.Info("Slot deactivated", zap.Int64("slot_id", slotID))
	return nil
}

// GetByID returns the slot or ErrNotFound
func (s *SlotService) GetByID(ctx context.Context, id int64) (*model.Slot, error) {
	slot, err := s.slots.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return nil, fmt.Errorf("slot %d: %w", id, model.ErrNotFound)
	}
	return slot, nil
}

// ListByTeacher returns all slots offered by a teacher
func (s *SlotService) ListByTeacher(ctx context.Context, teacherID int64) ([]*model.Slot, error) {
	return s.slots.GetByTeacherID(ctx, teacherID)
}
