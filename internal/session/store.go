package session

import (
	"context"
	"time"

	"github.com/studyhub/auth-service/internal/users"
)

// Session is a server-side login. The cookie carries an opaque token; ID
// is the token's SHA-256 so a leaked store does not leak usable cookies.
type Session struct {
	ID        string
	User      users.User // full row as it was when the session was established
	CreatedAt time.Time
	ExpiresAt time.Time // absolute expiry time
}

// Store persists sessions by ID. Get returns (nil, nil) when the ID is
// unknown. Implementations do not judge expiry beyond honouring ttl as a
// storage lifetime; Manager checks ExpiresAt.
type Store interface {
	Create(ctx context.Context, s Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
