// Package domain contains the core business entities, the persistence ports
// and the pure computations over them.
package domain

import (
	"context"
	"time"
)

// Bounds on the planned duration of a goal, in weeks.
const (
	MinTargetWeeks = 4
	MaxTargetWeeks = 52
)

// Profile is the single owner of a series of weight entries.
type Profile struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	StartWeight float64    `json:"startWeight"`
	GoalWeight  *float64   `json:"goalWeight"`
	StartDate   time.Time  `json:"startDate"`
	TargetDate  *time.Time `json:"targetDate"`
}

// HasGoal reports whether a goal weight is set.
func (p *Profile) HasGoal() bool {
	return p != nil && p.GoalWeight != nil
}

// NewProfile is the data needed to create a profile.
type NewProfile struct {
	Name        string
	StartWeight float64
	GoalWeight  *float64
	StartDate   time.Time
	TargetDate  *time.Time
}

// TargetDateFor returns start plus the given number of weeks.
func TargetDateFor(start time.Time, weeks int) time.Time {
	return start.AddDate(0, 0, 7*weeks)
}

// ProfileRepository is the port for profile persistence.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, p NewProfile) (*Profile, error)
	// GetProfile returns ErrNotFound for an unknown id.
	GetProfile(ctx context.Context, id int64) (*Profile, error)
	// DeleteProfile removes the profile and all of its entries atomically.
	DeleteProfile(ctx context.Context, id int64) error
}

// SessionStore persists the identifier of the bound profile between runs.
type SessionStore interface {
	// Load returns ok=false when nothing is bound.
	Load(ctx context.Context) (id int64, ok bool, err error)
	Save(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}
