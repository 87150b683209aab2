package app

import (
	"context"
	"time"

	"weighttrack/internal/domain"
)

// MaxChartDays bounds the chart window.
const MaxChartDays = 366

// ChartsService encapsulates chart data retrieval use cases.
type ChartsService struct {
	profiles domain.ProfileRepository
	weights  domain.WeightRepository
	now      func() time.Time
}

// NewChartsService creates a ChartsService backed by the given repositories.
func NewChartsService(pr domain.ProfileRepository, wr domain.WeightRepository) *ChartsService {
	return &ChartsService{profiles: pr, weights: wr, now: time.Now}
}

// WithClock replaces the source of "now". Used by tests.
func (s *ChartsService) WithClock(now func() time.Time) *ChartsService {
	s.now = now
	return s
}

// DayPoint is a single data point returned by Daily. Weight is nil on days
// without an entry.
type DayPoint struct {
	Day    string   `json:"day"`
	Weight *float64 `json:"weight"`
}

// Series is the chart feed: one point per day, oldest first.
type Series struct {
	Days       int        `json:"days"`
	GoalWeight *float64   `json:"goalWeight"`
	Points     []DayPoint `json:"items"`
}

// Daily returns per-day chart data for the last days days, today included.
func (s *ChartsService) Daily(ctx context.Context, userID int64, days int) (*Series, error) {
	if days <= 0 {
		return nil, &domain.ValidationError{Field: "days", Reason: "must be > 0"}
	}
	if days > MaxChartDays {
		days = MaxChartDays
	}

	p, entries, err := loadProfileAndEntries(ctx, s.profiles, s.weights, userID)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]float64, len(entries))
	for _, e := range domain.SortedByDate(entries) {
		byDay[domain.DayString(e.Date, nil)] = e.Weight
	}

	today := domain.DayOf(s.now(), nil)
	points := make([]DayPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		dayStr := domain.DayString(today.AddDate(0, 0, -i), nil)
		var wp *float64
		if w, ok := byDay[dayStr]; ok {
			wp = &w
		}
		points = append(points, DayPoint{Day: dayStr, Weight: wp})
	}
	return &Series{Days: days, GoalWeight: p.GoalWeight, Points: points}, nil
}
