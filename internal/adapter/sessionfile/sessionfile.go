// Package sessionfile persists the bound profile id in a small JSON file so a
// restarted desktop instance comes back to the same profile.
package sessionfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"weighttrack/internal/domain"
)

var _ domain.SessionStore = (*Store)(nil)

type state struct {
	ProfileID int64 `json:"profileId"`
}

// Store is a file-backed domain.SessionStore.
type Store struct {
	mu   sync.Mutex
	path string
}

// New returns a Store writing to path. The file is created on first Save.
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the bound profile id. A missing file means nothing is bound.
func (s *Store) Load(ctx context.Context) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return 0, false, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if st.ProfileID <= 0 {
		return 0, false, nil
	}
	return st.ProfileID, true, nil
}

// Save writes id, replacing the file atomically.
func (s *Store) Save(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(state{ProfileID: id})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Clear removes the file.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
