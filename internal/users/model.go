package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// User is the single persisted account row. Every authentication method
// resolves to a User by email.
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`

	// PasswordHash is a bcrypt digest for password accounts and the
	// provider's filler value for accounts created through sign-in with
	// Google or Discord.
	PasswordHash string `json:"-"`
}

// Store is the credential store. Implementations must guarantee at most
// one row per email and report a lost insert race as ErrDuplicateEmail.
type Store interface {
	// FindByEmail returns ErrNotFound when no row matches. Email is
	// compared exactly as stored.
	FindByEmail(ctx context.Context, email string) (*User, error)

	Create(ctx context.Context, email, passwordHash string) (*User, error)

	Ping(ctx context.Context) error
}
