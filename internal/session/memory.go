package session

import (
	"context"
	"sync"

	"github.com/agrovia/agroexport-web/pkg/enums"
)

// memoryStore is the in-process fallback used by tests and local dev
// without Redis. No TTL handling: entries live until cleared.
type memoryStore struct {
	mu    sync.RWMutex
	slots map[string]map[enums.Role]Credentials
}

// NewMemoryStore builds an in-memory session store.
func NewMemoryStore() Store {
	return &memoryStore{slots: map[string]map[enums.Role]Credentials{}}
}

func (s *memoryStore) Get(_ context.Context, sessionID string, role enums.Role) (Credentials, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roles, ok := s.slots[sessionID]
	if !ok {
		return Credentials{}, false, nil
	}
	creds, ok := roles[role]
	if !ok || creds.Token == "" {
		return Credentials{}, false, nil
	}
	return creds, true, nil
}

func (s *memoryStore) Set(_ context.Context, sessionID string, role enums.Role, creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	roles, ok := s.slots[sessionID]
	if !ok {
		roles = map[enums.Role]Credentials{}
		s.slots[sessionID] = roles
	}
	roles[role] = creds
	return nil
}

func (s *memoryStore) Clear(_ context.Context, sessionID string, role enums.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if roles, ok := s.slots[sessionID]; ok {
		delete(roles, role)
	}
	return nil
}

func (s *memoryStore) ClearAll(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, sessionID)
	return nil
}
