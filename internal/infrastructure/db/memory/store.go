// Package memory keeps client state in process memory. It backs tests and
// the STORE_DRIVER=memory development mode.
package memory

import (
	"context"
	"sync"

	"github.com/99minutos/storefront/internal/core/domain"
)

type Store struct {
	mu    sync.RWMutex
	token string
	carts map[string][]domain.LineItem
}

func NewStore() *Store {
	return &Store{carts: make(map[string][]domain.LineItem)}
}

func (s *Store) LoadToken(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", domain.ErrKeyNotFound
	}
	return s.token, nil
}

func (s *Store) SaveToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *Store) DeleteToken(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

func (s *Store) LoadCart(_ context.Context, identityID string) ([]domain.LineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.carts[identityID]
	out := make([]domain.LineItem, len(items))
	copy(out, items)
	return out, nil
}

func (s *Store) SaveCart(_ context.Context, identityID string, items []domain.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]domain.LineItem, len(items))
	copy(cp, items)
	s.carts[identityID] = cp
	return nil
}

func (s *Store) DeleteCart(_ context.Context, identityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, identityID)
	return nil
}

func (s *Store) Ping(_ context.Context) error { return nil }

func (s *Store) Close() error { return nil }
