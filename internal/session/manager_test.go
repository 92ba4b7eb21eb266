package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhub/auth-service/internal/users"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type failingStore struct {
	Store
	err error
}

func (f failingStore) Create(context.Context, Session, time.Duration) error { return f.err }
func (f failingStore) Get(context.Context, string) (*Session, error)        { return nil, f.err }

func testUser() users.User {
	return users.User{ID: uuid.New(), Email: "a@x.com", PasswordHash: "$2a$10$digest"}
}

func TestManager_EstablishThenResolve(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, 24*time.Hour)
	u := testUser()

	token, s, err := m.Establish(context.Background(), u)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, IDFromToken(token), s.ID)
	assert.NotEqual(t, token, s.ID)
	assert.Equal(t, 24*time.Hour, s.ExpiresAt.Sub(s.CreatedAt))

	got, err := m.Resolve(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u, *got)
}

func TestManager_ResolveAbsent(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour)
	token, _, err := m.Establish(context.Background(), testUser())
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"empty":    "",
		"unknown":  "not-a-token",
		"tampered": token + "x",
	} {
		t.Run(name, func(t *testing.T) {
			got, err := m.Resolve(context.Background(), tok)
			assert.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestManager_ResolveAfterTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore()
	m := NewManager(store, 24*time.Hour, WithClock(clock.Now))

	token, _, err := m.Establish(context.Background(), testUser())
	require.NoError(t, err)

	clock.Advance(24*time.Hour - time.Second)
	got, err := m.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.NotNil(t, got)

	clock.Advance(time.Second)
	got, err = m.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, store.Len())
}

func TestManager_StoreFailures(t *testing.T) {
	m := NewManager(failingStore{Store: NewMemoryStore(), err: errors.New("redis down")}, time.Hour)

	_, _, err := m.Establish(context.Background(), testUser())
	assert.Error(t, err)

	got, err := m.Resolve(context.Background(), "some-token")
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestNewToken_Unique(t *testing.T) {
	seen := map[string]struct{}{}
	for range 100 {
		tok, err := NewToken()
		require.NoError(t, err)
		assert.Len(t, tok, 43)
		seen[tok] = struct{}{}
	}
	assert.Len(t, seen, 100)
	assert.Len(t, IDFromToken("x"), 64)
}
