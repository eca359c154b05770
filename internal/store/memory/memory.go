// Package memory is an in-memory store adapter used by tests and local
// development. It applies the same (id, owner) match semantics as the
// persistent adapters.
package memory

import (
	"context"
	"sync"
	"time"

	"finsight/internal/core"
	"finsight/internal/store"
)

type Store struct {
	mu    sync.Mutex
	items []core.Transaction
	users map[string]store.User
}

func New() *Store {
	return &Store{users: make(map[string]store.User)}
}

// Seed loads a starting transaction set, replacing any existing records.
func (s *Store) Seed(ts []core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]core.Transaction(nil), ts...)
}

func (s *Store) FindByOwner(_ context.Context, owner string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, 0)
	for _, t := range s.items {
		if t.Owner == owner {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) Create(_ context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, t)
	return nil
}

func (s *Store) UpdateFields(_ context.Context, id, owner string, p core.Patch) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.items {
		if t.ID != id || t.Owner != owner {
			continue
		}
		updated := p.Apply(t)
		updated.UpdatedAt = time.Now().UTC()
		s.items[i] = updated
		return updated, nil
	}
	return core.Transaction{}, store.ErrNotFound
}

func (s *Store) DeleteByID(_ context.Context, id, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.items {
		if t.ID == id && t.Owner == owner {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) CreateUser(_ context.Context, u store.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; ok {
		return store.ErrUserExists
	}
	s.users[u.ID] = u
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (store.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return store.User{}, store.ErrUserNotFound
	}
	return u, nil
}

func (s *Store) Close() error { return nil }
