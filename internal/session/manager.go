package session

import (
	"context"
	"time"

	"github.com/samber/oops"

	"github.com/studyhub/auth-service/internal/logger"
	"github.com/studyhub/auth-service/internal/users"
)

// Manager establishes and resolves sessions.
type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(store Store, ttl time.Duration, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Establish creates a session for u and returns the client token.
func (m *Manager) Establish(ctx context.Context, u users.User) (string, *Session, error) {
	token, err := NewToken()
	if err != nil {
		return "", nil, err
	}

	now := m.now()
	s := Session{
		ID:        IDFromToken(token),
		User:      u,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	if err := m.store.Create(ctx, s, m.ttl); err != nil {
		return "", nil, oops.Code("SESSION_ESTABLISH_FAILED").
			With("user_id", u.ID.String()).
			Wrap(err)
	}

	return token, &s, nil
}

// Resolve returns the session user for token. Empty, unknown and expired
// tokens resolve to (nil, nil); only store failures are errors.
func (m *Manager) Resolve(ctx context.Context, token string) (*users.User, error) {
	if token == "" {
		return nil, nil
	}

	id := IDFromToken(token)
	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, oops.Code("SESSION_RESOLVE_FAILED").Wrap(err)
	}
	if s == nil {
		return nil, nil
	}

	if !m.now().Before(s.ExpiresAt) {
		if err := m.store.Delete(ctx, id); err != nil {
			logger.Warn("expired session delete failed", map[string]any{
				"error": err.Error(),
			})
		}
		return nil, nil
	}

	u := s.User
	return &u, nil
}

// Ping checks the backing store.
func (m *Manager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}
