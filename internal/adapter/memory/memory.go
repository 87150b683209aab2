// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"weighttrack/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	profiles []domain.Profile
	entries  []domain.WeightEntry

	profileIDCounter int64
	entryIDCounter   int64

	now func() time.Time
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{now: time.Now}
}

// Ensure interfaces are met.
var _ domain.ProfileRepository = (*DB)(nil)
var _ domain.WeightRepository = (*DB)(nil)
var _ domain.SessionStore = (*Session)(nil)

// --- ProfileRepository ---

// CreateProfile stores a new profile.
func (db *DB) CreateProfile(ctx context.Context, np domain.NewProfile) (*domain.Profile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.profileIDCounter++
	p := domain.Profile{
		ID:          db.profileIDCounter,
		Name:        np.Name,
		StartWeight: np.StartWeight,
		GoalWeight:  copyFloat(np.GoalWeight),
		StartDate:   np.StartDate,
		TargetDate:  np.TargetDate,
	}
	if p.StartDate.IsZero() {
		p.StartDate = db.now()
	}
	db.profiles = append(db.profiles, p)
	return &p, nil
}

// GetProfile retrieves a profile by ID.
func (db *DB) GetProfile(ctx context.Context, id int64) (*domain.Profile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, p := range db.profiles {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

// DeleteProfile removes a profile together with its entries.
func (db *DB) DeleteProfile(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	idx := -1
	for i, p := range db.profiles {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.ErrProfileNotFound
	}
	db.profiles = append(db.profiles[:idx], db.profiles[idx+1:]...)
	db.deleteEntriesOf(id)
	return nil
}

// --- WeightRepository ---

// CreateEntry adds a weight entry. The owning profile must exist.
func (db *DB) CreateEntry(ctx context.Context, userID int64, weight float64, note *string, date time.Time) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !db.hasProfile(userID) {
		return nil, domain.ErrProfileNotFound
	}
	now := db.now()
	if date.IsZero() {
		date = now
	}
	db.entryIDCounter++
	e := domain.WeightEntry{
		ID:        db.entryIDCounter,
		UserID:    userID,
		Date:      date,
		Weight:    weight,
		Note:      copyString(note),
		CreatedAt: now,
	}
	db.entries = append(db.entries, e)
	return &e, nil
}

// ListEntries lists the entries of a user, most recent date first.
func (db *DB) ListEntries(ctx context.Context, userID int64) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.WeightEntry, 0, len(db.entries))
	for _, e := range db.entries {
		if e.UserID == userID {
			result = append(result, e)
		}
	}

	// date desc, id desc
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date.Equal(result[j].Date) {
			return result[i].ID > result[j].ID
		}
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

// EntryForDay returns the latest entry on the calendar day of day.
func (db *DB) EntryForDay(ctx context.Context, userID int64, day time.Time) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	dayStart, dayEnd := domain.DayBounds(day, nil)

	var latest *domain.WeightEntry
	for i := range db.entries {
		e := &db.entries[i]
		if e.UserID != userID || e.Date.Before(dayStart) || !e.Date.Before(dayEnd) {
			continue
		}
		if latest == nil || e.Date.After(latest.Date) {
			latest = e
		}
	}
	if latest == nil {
		return nil, nil
	}
	ret := *latest
	return &ret, nil
}

// UpdateEntry overwrites an entry of the user.
func (db *DB) UpdateEntry(ctx context.Context, userID, id int64, weight float64, note *string, date time.Time) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.entries {
		e := &db.entries[i]
		if e.ID == id && e.UserID == userID {
			e.Weight = weight
			e.Note = copyString(note)
			e.Date = date
			ret := *e
			return &ret, nil
		}
	}
	return nil, domain.ErrEntryNotFound
}

// DeleteEntry deletes one entry of the user.
func (db *DB) DeleteEntry(ctx context.Context, userID, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, e := range db.entries {
		if e.ID == id && e.UserID == userID {
			db.entries = append(db.entries[:i], db.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrEntryNotFound
}

// DeleteAllEntries deletes every entry of the user.
func (db *DB) DeleteAllEntries(ctx context.Context, userID int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.deleteEntriesOf(userID)
	return nil
}

func (db *DB) hasProfile(id int64) bool {
	for _, p := range db.profiles {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (db *DB) deleteEntriesOf(userID int64) {
	kept := db.entries[:0]
	for _, e := range db.entries {
		if e.UserID != userID {
			kept = append(kept, e)
		}
	}
	db.entries = kept
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// --- SessionStore ---

// Session keeps the bound profile id in memory only.
type Session struct {
	mu    sync.Mutex
	id    int64
	bound bool
}

// NewSession creates an empty session store.
func NewSession() *Session {
	return &Session{}
}

// Load returns the bound id.
func (s *Session) Load(ctx context.Context) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, s.bound, nil
}

// Save binds id.
func (s *Session) Save(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id, s.bound = id, true
	return nil
}

// Clear unbinds.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id, s.bound = 0, false
	return nil
}
