package session

import (
	"context"
	"sync"

	"github.com/careaxis/copilot/internal/domain/entities"
	"github.com/careaxis/copilot/internal/domain/providers"
)

// MemoryStore keeps the session in process memory. Used in fixture mode
// and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	session *entities.Session
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() providers.SessionStore {
	return &MemoryStore{}
}

// Save stores the session
func (s *MemoryStore) Save(ctx context.Context, session *entities.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.session = &copied
	return nil
}

// Load returns the stored session, or nil when none exists
func (s *MemoryStore) Load(ctx context.Context) (*entities.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, nil
	}
	copied := *s.session
	return &copied, nil
}

// Clear removes the session
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}
