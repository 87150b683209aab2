package domain

import (
	"context"
	"encoding/json"
	"math"
	"time"
	"unicode/utf8"
)

// MaxNoteLength bounds the free-text note on an entry, in runes.
const MaxNoteLength = 500

// InitialEntryNote marks the entry created together with a profile.
const InitialEntryNote = "Starting weight"

// WeightEntry represents a single weight measurement.
type WeightEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Date      time.Time `json:"date"`
	Weight    float64   `json:"weight"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

// MarshalJSON adds the local calendar day so the UI never has to derive it.
func (e WeightEntry) MarshalJSON() ([]byte, error) {
	type plain WeightEntry
	return json.Marshal(struct {
		plain
		Day string `json:"day"`
	}{plain(e), DayString(e.Date, nil)})
}

// WeightRepository is the port for weight persistence.
type WeightRepository interface {
	// CreateEntry stores a new entry; a zero date means now.
	CreateEntry(ctx context.Context, userID int64, weight float64, note *string, date time.Time) (*WeightEntry, error)
	// ListEntries returns all entries of a user, most recent date first.
	ListEntries(ctx context.Context, userID int64) ([]WeightEntry, error)
	// EntryForDay returns the entry on the calendar day of day, or nil.
	EntryForDay(ctx context.Context, userID int64, day time.Time) (*WeightEntry, error)
	// UpdateEntry overwrites weight, note and date and returns the stored row.
	UpdateEntry(ctx context.Context, userID, id int64, weight float64, note *string, date time.Time) (*WeightEntry, error)
	DeleteEntry(ctx context.Context, userID, id int64) error
	DeleteAllEntries(ctx context.Context, userID int64) error
}

// ValidateWeight rejects non-finite and non-positive weights.
func ValidateWeight(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be a finite number")
	}
	if v <= 0 {
		return invalid(field, "must be > 0")
	}
	return nil
}

// ValidateNote rejects overlong notes. A nil note is always valid.
func ValidateNote(note *string) error {
	if note != nil && utf8.RuneCountInString(*note) > MaxNoteLength {
		return invalid("note", "is too long")
	}
	return nil
}
