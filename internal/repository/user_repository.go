package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorlane/booking_ledger/internal/model"
	"github.com/tutorlane/booking_ledger/internal/repository/base"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `
	u.id, u.username, u.bio, u.role_id, u.created_at, u.updated_at,
	r.id, r.name, r.code, r.created_at
`

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	var roleID *int64
	var roleName, roleCode *string
	var roleCreatedAt *time.Time

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Bio,
		&user.RoleID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&roleID,
		&roleName,
		&roleCode,
		&roleCreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if roleID != nil {
		role := &model.Role{ID: *roleID, CreatedAt: *roleCreatedAt}
		if roleName != nil {
			role.Name = *roleName
		}
		if roleCode != nil {
			role.Code = *roleCode
		}
		user.Role = role
	}

	return &user, nil
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (username, bio, role_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		user.Username,
		user.Bio,
		user.RoleID,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByID returns the user with the joined role, nil when there is none
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		WHERE u.id = $1
	`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return user, nil
}

// GetByUsername returns the user with the joined role, nil when there is none
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		WHERE u.username = $1
	`

	user, err := scanUser(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}

	return user, nil
}

// UpdateRole assigns the role to the user and persists it explicitly
func (r *UserRepository) UpdateRole(ctx context.Context, userID, roleID int64) error {
	query := `
		UPDATE users
		SET role_id = $1, updated_at = now()
		WHERE id = $2
	`

	result, err := r.pool.Exec(ctx, query, roleID, userID)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, model.ErrNotFound)
	}

	return nil
}

// UpdateBio updates the user's bio
func (r *UserRepository) UpdateBio(ctx context.Context, userID int64, bio string) error {
	query := `
		UPDATE users
		SET bio = $1, updated_at = now()
		WHERE id = $2
	`

	result, err := r.pool.Exec(ctx, query, bio, userID)
	if err != nil {
		return fmt.Errorf("update user bio: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, model.ErrNotFound)
	}

	return nil
}

// Delete removes the user; dependent rows cascade in the store
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", id, model.ErrNotFound)
	}

	return nil
}
