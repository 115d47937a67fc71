package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tutorlane/booking_ledger/internal/model"
)

// UserStore is the user persistence the services need.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateRole(ctx context.Context, userID, roleID int64) error
	UpdateBio(ctx context.Context, userID int64, bio string) error
	Delete(ctx context.Context, id int64) error
}

type UserService struct {
	users  UserStore
	roles  *RoleService
	logger *zap.Logger
}

func NewUserService(users UserStore, roles *RoleService, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		roles:  roles,
		logger: logger,
	}
}

// Register creates a new user without a role
func (s *UserService) Register(ctx context.Context, username, bio string) (*model.User, error) {
	user := &model.User{
		Username: username,
		Bio:      bio,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("New user registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", username),
	)

	return user, nil
}

// GetByID returns the user or ErrNotFound
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", id, model.ErrNotFound)
	}
	return user, nil
}

// GetByUsername returns the user or ErrNotFound
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %q: %w", username, model.ErrNotFound)
	}
	return user, nil
}

// SetRole looks up the role by code and assigns it to the user with an
// explicit persisted write. Fails with ErrNotFound when no such role or user
// exists.
func (s *UserService) SetRole(ctx context.Context, userID int64, roleCode string) error {
	role, err := s.roles.GetByCode(ctx, roleCode)
	if err != nil {
		return err
	}

	if err := s.users.UpdateRole(ctx, userID, role.ID); err != nil {
		return err
	}

	s.logger.Info("User role set",
		zap.Int64("user_id", userID),
		zap.String("role_code", roleCode),
	)

	return nil
}

// UpdateBio updates the user's bio
func (s *UserService) UpdateBio(ctx context.Context, userID int64, bio string) error {
	return s.users.UpdateBio(ctx, userID, bio)
}

// Delete removes the user; slots, requests, lessons, reviews and
// notifications referencing them cascade in the store
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("User deleted", zap.Int64("user_id", userID))
	return nil
}
