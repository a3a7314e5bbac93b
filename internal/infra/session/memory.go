package session

import (
	"context"
	"sync"

	"github.com/rehabflow/care-scheduler/internal/domain/calendar"
)

// MemoryStore keeps calendar state per user for the life of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]calendar.State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]calendar.State)}
}

func (s *MemoryStore) Load(_ context.Context, userID string) (calendar.State, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.states[userID]
	return st, ok, nil
}

func (s *MemoryStore) Save(_ context.Context, userID string, st calendar.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = st
	return nil
}
