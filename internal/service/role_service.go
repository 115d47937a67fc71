package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/tutorlane/booking_ledger/internal/model"
)

// RoleStore is the role persistence the service needs.
type RoleStore interface {
	GetOrCreate(ctx context.Context, name, code string) (*model.Role, error)
	GetByCode(ctx context.Context, code string) (*model.Role, error)
	List(ctx context.Context) ([]*model.Role, error)
}

type RoleService struct {
	roles  RoleStore
	logger *zap.Logger

	mu    sync.Mutex
	cache map[string]*model.Role // well-known roles by code
}

func NewRoleService(roles RoleStore, logger *zap.Logger) *RoleService {
	return &RoleService{
		roles:  roles,
		logger: logger,
		cache:  make(map[string]*model.Role),
	}
}

func wellKnown(code string) bool {
	return code == model.RoleCodeStudent || code == model.RoleCodeTeacher
}

func (s *RoleService) cached(code string) *model.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache[code]
}

func (s *RoleService) put(role *model.Role) {
	// Only the two well-known roles are cached; anything else may be renamed
	// or recoded at runtime.
	if !wellKnown(role.Code) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[role.Code] = role
}

// EnsureWellKnown gets or creates the Student and Teacher roles. Idempotent,
// safe to call on every startup.
func (s *RoleService) EnsureWellKnown(ctx context.Context) error {
	known := []struct{ name, code string }{
		{model.RoleNameStudent, model.RoleCodeStudent},
		{model.RoleNameTeacher, model.RoleCodeTeacher},
	}

	for _, wk := range known {
		role, err := s.roles.GetOrCreate(ctx, wk.name, wk.code)
		if err != nil {
			return fmt.Errorf("ensure role %s: %w", wk.code, err)
		}
		s.put(role)
	}

	s.logger.Info("Well-known roles ensured")
	return nil
}

// GetByCode returns the role with the given code, serving well-known roles
// from the process-local cache.
func (s *RoleService) GetByCode(ctx context.Context, code string) (*model.Role, error) {
	if role := s.cached(code); role != nil {
		return role, nil
	}

	role, err := s.roles.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("get role: %w", err)
	}
	if role == nil {
		return nil, fmt.Errorf("role %q: %w", code, model.ErrNotFound)
	}

	s.put(role)
	return role, nil
}

// List returns all roles
func (s *RoleService) List(ctx context.Context) ([]*model.Role, error) {
	return s.roles.List(ctx)
}
