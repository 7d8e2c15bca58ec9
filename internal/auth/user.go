package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vangoframework/invhealth/internal/domain"
)

// ErrUserNotFound is returned by a UserStore when no account matches.
var ErrUserNotFound = errors.New("user not found")

// User is a dashboard account.
type User struct {
	ID           uuid.UUID
	Username     string
	FullName     string
	Role         domain.Role
	PasswordHash string
	CreatedAt    time.Time
}

// UserStore looks up and persists dashboard accounts.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	Upsert(ctx context.Context, u *User) error
}

// MemoryUserStore is a UserStore kept in process memory. It backs the
// dashboard when no database is configured.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryUserStore creates an empty in-memory store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]User)}
}

// FindByUsername returns a copy of the stored user.
func (s *MemoryUserStore) FindByUsername(_ context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

// Upsert inserts the user or replaces the account with the same username.
// The existing ID and creation time are preserved on replace.
func (s *MemoryUserStore) Upsert(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.users[u.Username]; ok {
		u.ID = existing.ID
		u.CreatedAt = existing.CreatedAt
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.users[u.Username] = *u
	return nil
}
