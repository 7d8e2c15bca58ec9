package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vangoframework/invhealth/internal/auth"
	"github.com/vangoframework/invhealth/internal/domain"
)

// UserStore is an auth.UserStore kept in the users table.
type UserStore struct {
	db *DB
}

// NewUserStore creates a UserStore on top of db.
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

// FindByUsername loads a user by username.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	var (
		u    auth.User
		role string
	)
	err := s.db.Pool.QueryRow(ctx,
		`SELECT id, username, full_name, role, password_hash, created_at
		   FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.FullName, &role, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	if u.Role, err = domain.ParseRole(role); err != nil {
		return nil, fmt.Errorf("user %s: %w", username, err)
	}
	return &u, nil
}

// Upsert inserts the user or updates the row with the same username.
// u.ID and u.CreatedAt are set from the stored row.
func (s *UserStore) Upsert(ctx context.Context, u *auth.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	err := s.db.Pool.QueryRow(ctx,
		`INSERT INTO users (id, username, full_name, role, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (username) DO UPDATE
		   SET full_name = EXCLUDED.full_name,
		       role = EXCLUDED.role,
		       password_hash = EXCLUDED.password_hash
		 RETURNING id, created_at`,
		u.ID, u.Username, u.FullName, u.Role.String(), u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}
