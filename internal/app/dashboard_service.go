package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"weighttrack/internal/domain"
)

// Dashboard is everything the home screen shows. Stats and Motivation are nil
// until there is data to derive them from.
type Dashboard struct {
	Profile    *domain.Profile      `json:"profile"`
	Stats      *domain.Stats        `json:"stats"`
	Today      *domain.WeightEntry  `json:"today"`
	Motivation *domain.Motivation   `json:"motivation"`
	Entries    []domain.WeightEntry `json:"entries"`
}

// DashboardService assembles read-only derived data for the presentation
// layer.
type DashboardService struct {
	profiles   domain.ProfileRepository
	weights    domain.WeightRepository
	motivation *MotivationService
	now        func() time.Time
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(pr domain.ProfileRepository, wr domain.WeightRepository, ms *MotivationService) *DashboardService {
	return &DashboardService{profiles: pr, weights: wr, motivation: ms, now: time.Now}
}

// WithClock replaces the source of "now". Used by tests.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// Get loads the profile and its entries concurrently and derives stats,
// today's entry and a motivational message.
func (s *DashboardService) Get(ctx context.Context, userID int64) (*Dashboard, error) {
	p, entries, err := loadProfileAndEntries(ctx, s.profiles, s.weights, userID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{Profile: p, Entries: entries}
	now := s.now()
	for i := range entries {
		if domain.SameDay(entries[i].Date, now, nil) {
			d.Today = &entries[i]
			break
		}
	}
	if st, ok := domain.ComputeStats(entries, p, nil); ok {
		m := s.motivation.Pick(st, p, d.Today != nil)
		d.Stats = &st
		d.Motivation = &m
	}
	return d, nil
}

// Motivation draws a fresh message for the current state, or nil when there
// are no stats yet.
func (s *DashboardService) Motivation(ctx context.Context, userID int64) (*domain.Motivation, error) {
	d, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return d.Motivation, nil
}

func loadProfileAndEntries(ctx context.Context, pr domain.ProfileRepository, wr domain.WeightRepository, userID int64) (*domain.Profile, []domain.WeightEntry, error) {
	var (
		p       *domain.Profile
		entries []domain.WeightEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p, err = pr.GetProfile(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = wr.ListEntries(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return p, entries, nil
}
