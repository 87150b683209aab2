// Package app holds the application services and business logic.
package app

import (
	"context"
	"fmt"
	"time"

	"weighttrack/internal/domain"
)

// EntryUpdate is the input of an edit. A nil Note keeps the current note and
// an empty one clears it; a nil Date keeps the current date.
type EntryUpdate struct {
	Weight float64
	Note   *string
	Date   *time.Time
}

// WeightService mediates every write to weight entries and keeps at most one
// entry per user per calendar day.
type WeightService struct {
	repo domain.WeightRepository
	now  func() time.Time
}

// NewWeightService creates a WeightService backed by the given repository.
func NewWeightService(repo domain.WeightRepository) *WeightService {
	return &WeightService{repo: repo, now: time.Now}
}

// WithClock replaces the source of "now". Used by tests.
func (s *WeightService) WithClock(now func() time.Time) *WeightService {
	s.now = now
	return s
}

// CreateInitialEntry records the starting point of a freshly created profile.
func (s *WeightService) CreateInitialEntry(ctx context.Context, userID int64, weight float64) (*domain.WeightEntry, error) {
	if err := domain.ValidateWeight("startWeight", weight); err != nil {
		return nil, err
	}
	note := domain.InitialEntryNote
	entry, err := s.repo.CreateEntry(ctx, userID, weight, &note, s.now())
	if err != nil {
		return nil, fmt.Errorf("create initial entry: %w", err)
	}
	return entry, nil
}

// LogToday records weight for the current calendar day. When today already
// has an entry it is returned together with domain.ErrAlreadyLogged and
// nothing is written; the caller edits that entry instead.
func (s *WeightService) LogToday(ctx context.Context, userID int64, weight float64, note *string) (*domain.WeightEntry, error) {
	if err := domain.ValidateWeight("weight", weight); err != nil {
		return nil, err
	}
	if err := domain.ValidateNote(note); err != nil {
		return nil, err
	}

	now := s.now()
	existing, err := s.repo.EntryForDay(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("check today: %w", err)
	}
	if existing != nil {
		return existing, domain.ErrAlreadyLogged
	}

	entry, err := s.repo.CreateEntry(ctx, userID, weight, normalizeNote(note), now)
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return entry, nil
}

// Edit updates weight, note and optionally date of an entry. Moving an entry
// onto a calendar day that already holds another entry fails with
// domain.ErrCollision and writes nothing.
func (s *WeightService) Edit(ctx context.Context, userID, id int64, upd EntryUpdate) (*domain.WeightEntry, error) {
	if err := domain.ValidateWeight("weight", upd.Weight); err != nil {
		return nil, err
	}
	if err := domain.ValidateNote(upd.Note); err != nil {
		return nil, err
	}
	if upd.Date != nil && upd.Date.IsZero() {
		return nil, &domain.ValidationError{Field: "date", Reason: "must be set"}
	}

	entries, err := s.repo.ListEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	var current *domain.WeightEntry
	for i := range entries {
		if entries[i].ID == id {
			current = &entries[i]
			break
		}
	}
	if current == nil {
		return nil, domain.ErrEntryNotFound
	}

	date := current.Date
	if upd.Date != nil {
		// Staying on the current day never collides, even with legacy
		// same-day pairs.
		if !domain.SameDay(current.Date, *upd.Date, nil) {
			for _, other := range entries {
				if other.ID != id && domain.SameDay(other.Date, *upd.Date, nil) {
					return nil, fmt.Errorf("%s: %w", domain.DayString(*upd.Date, nil), domain.ErrCollision)
				}
			}
		}
		date = *upd.Date
	}

	note := current.Note
	if upd.Note != nil {
		note = normalizeNote(upd.Note)
	}

	entry, err := s.repo.UpdateEntry(ctx, userID, id, upd.Weight, note, date)
	if err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}
	return entry, nil
}

// Delete removes one entry. An unknown id yields domain.ErrEntryNotFound.
func (s *WeightService) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteEntry(ctx, userID, id)
}

// List returns every entry of the user, most recent first.
func (s *WeightService) List(ctx context.Context, userID int64) ([]domain.WeightEntry, error) {
	return s.repo.ListEntries(ctx, userID)
}

// Today returns the entry for the current calendar day, or nil.
func (s *WeightService) Today(ctx context.Context, userID int64) (*domain.WeightEntry, error) {
	return s.repo.EntryForDay(ctx, userID, s.now())
}

func normalizeNote(note *string) *string {
	if note == nil || *note == "" {
		return nil
	}
	return note
}
