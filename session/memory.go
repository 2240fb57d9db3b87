package session

import (
	"context"
	"sync"

	"github.com/octabyte/bm-social/models"
)

type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(_ context.Context, session models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = toEntries(session)
	return nil
}

func (m *MemoryStore) Load(_ context.Context) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fromEntries(m.entries)
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}
