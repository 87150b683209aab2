package app

import (
	"context"
	"fmt"
	"sync"

	"weighttrack/internal/domain"
)

// Session is the single-slot binding between the running instance and one
// profile. It moves absent -> bound -> absent; a reset or a profile the store
// no longer knows returns it to absent.
type Session struct {
	mu    sync.Mutex
	store domain.SessionStore
	id    int64
	bound bool
}

// NewSession restores the last bound profile from store.
func NewSession(ctx context.Context, store domain.SessionStore) (*Session, error) {
	id, ok, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &Session{store: store, id: id, bound: ok}, nil
}

// ID returns the bound profile identifier.
func (s *Session) ID() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, s.bound
}

// Bind persists id as the current profile.
func (s *Session) Bind(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, id); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.id, s.bound = id, true
	return nil
}

// Clear forgets the current profile.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.id, s.bound = 0, false
	return nil
}
