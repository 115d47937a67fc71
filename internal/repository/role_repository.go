package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorlane/booking_ledger/internal/model"
	"github.com/tutorlane/booking_ledger/internal/repository/base"
)

type RoleRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

// GetOrCreate returns the role with the given code, creating it if missing.
// Safe under concurrent callers: the insert loses quietly on conflict and the
// winner's row is re-read.
func (r *RoleRepository) GetOrCreate(ctx context.Context, name, code string) (*model.Role, error) {
	query := `
		INSERT INTO roles (name, code)
		VALUES ($1, $2)
		ON CONFLICT (code) DO NOTHING
	`

	if _, err := r.pool.Exec(ctx, query, name, code); err != nil {
		return nil, fmt.Errorf("insert role: %w", err)
	}

	role, err := r.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("role %q vanished after get-or-create", code)
	}

	return role, nil
}

// GetByCode returns the role with the given code, nil when there is none
func (r *RoleRepository) GetByCode(ctx context.Context, code string) (*model.Role, error) {
	query := `
		SELECT id, name, COALESCE(code, ''), created_at
		FROM roles
		WHERE code = $1
	`

	var role model.Role
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&role.ID,
		&role.Name,
		&role.Code,
		&role.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role by code: %w", err)
	}

	return &role, nil
}

// GetByID returns the role with the given id, nil when there is none
func (r *RoleRepository) GetByID(ctx context.Context, id int64) (*model.Role, error) {
	query := `
		SELECT id, name, COALESCE(code, ''), created_at
		FROM roles
		WHERE id = $1
	`

	var role model.Role
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&role.ID,
		&role.Name,
		&role.Code,
		&role.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role by id: %w", err)
	}

	return &role, nil
}

// List returns all roles
func (r *RoleRepository) List(ctx context.Context) ([]*model.Role, error) {
	query := `
		SELECT id, name, COALESCE(code, ''), created_at
		FROM roles
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var roles []*model.Role
	for rows.Next() {
		var role model.Role
		err := rows.Scan(&role.ID, &role.Name, &role.Code, &role.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, &role)
	}

	return roles, nil
}
