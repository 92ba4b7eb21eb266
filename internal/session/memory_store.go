package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

type memoryEntry struct {
	s        Session
	deadline time.Time
}

// MemoryStore keeps sessions in process memory. Entries past their ttl are
// dropped on read.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryStore) Create(_ context.Context, s Session, ttl time.Duration) error {
	if s.ID == "" {
		return errors.New("session: missing id")
	}
	if ttl <= 0 {
		return errors.New("session: ttl must be positive")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[s.ID] = memoryEntry{s: s, deadline: m.now().Add(ttl)}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, nil
	}
	if !m.now().Before(e.deadline) {
		delete(m.entries, id)
		return nil, nil
	}
	s := e.s
	return &s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
