package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/vangoframework/invhealth/internal/domain"
)

// ErrInvalidCredentials is returned when the username or password is wrong.
// The two cases are not distinguished.
var ErrInvalidCredentials = errors.New("incorrect username or password")

// dummyHash is compared against when the user does not exist so that unknown
// usernames take as long as wrong passwords.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("invhealth-dummy-password"), bcrypt.DefaultCost)

// Authenticator verifies username/password pairs against a UserStore.
type Authenticator struct {
	users UserStore
	cost  int
}

// NewAuthenticator creates an Authenticator backed by the given store.
func NewAuthenticator(users UserStore) *Authenticator {
	return &Authenticator{users: users, cost: bcrypt.DefaultCost}
}

// Authenticate returns the matching user or ErrInvalidCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*User, error) {
	username = domain.NormalizeUsername(username)
	if err := domain.ValidateUsername(username); err != nil || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := a.users.FindByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Seed creates or updates an account with the given password.
func (a *Authenticator) Seed(ctx context.Context, username, password, fullName string, role domain.Role) (*User, error) {
	username = domain.NormalizeUsername(username)
	if err := domain.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("seed user %q: %w", username, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		Username:     username,
		FullName:     fullName,
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := a.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return user, nil
}
