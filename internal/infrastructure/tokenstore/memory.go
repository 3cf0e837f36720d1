package tokenstore

import (
	"context"
	"sync"

	"github.com/stockmanager/admin-console/internal/core/domain"
)

// MemoryStore is a process-local TokenStore. Gets counts reads, which tests
// use to assert that no token lookup happened.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	Gets   int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (s *MemoryStore) Get(_ context.Context) (domain.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Gets++
	return domain.TokenPair{Access: s.values[AccessTokenKey], Refresh: s.values[RefreshTokenKey]}, nil
}

func (s *MemoryStore) Set(_ context.Context, pair domain.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[AccessTokenKey] = pair.Access
	s.values[RefreshTokenKey] = pair.Refresh
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, AccessTokenKey)
	delete(s.values, RefreshTokenKey)
	return nil
}

// Has reports whether key currently holds a value.
func (s *MemoryStore) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.values[key]
	return ok
}
