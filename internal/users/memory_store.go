package users

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps users in process memory. It backs the "memory"
// storage backend and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	byEmail map[string]User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byEmail: make(map[string]User)}
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) Create(_ context.Context, email, passwordHash string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return nil, ErrDuplicateEmail
	}

	u := User{ID: uuid.New(), Email: email, PasswordHash: passwordHash}
	s.byEmail[email] = u
	return &u, nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

// Count returns the number of stored users.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byEmail)
}
