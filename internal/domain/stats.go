package domain

import (
	"math"
	"sort"
	"time"
)

// Stats is derived from the full entry series of a profile.
type Stats struct {
	CurrentWeight   float64   `json:"currentWeight"`
	StartingWeight  float64   `json:"startingWeight"`
	TotalChange     float64   `json:"totalChange"`
	DaysTracked     int       `json:"daysTracked"`
	WeeklyTrend     float64   `json:"weeklyTrend"`
	GoalProgress    float64   `json:"goalProgress"`
	Streak          int       `json:"streak"`
	EntryCount      int       `json:"entryCount"`
	RemainingToGoal *float64  `json:"remainingToGoal"`
	LatestDate      time.Time `json:"latestDate"`
}

// ComputeStats derives Stats from entries in any order. It returns false when
// there is nothing to compute from: no entries or no profile.
func ComputeStats(entries []WeightEntry, profile *Profile, loc *time.Location) (Stats, bool) {
	if len(entries) == 0 || profile == nil {
		return Stats{}, false
	}

	sorted := SortedByDate(entries)
	first, last := sorted[0], sorted[len(sorted)-1]

	st := Stats{
		CurrentWeight:  last.Weight,
		StartingWeight: first.Weight,
		TotalChange:    last.Weight - first.Weight,
		DaysTracked:    max(1, DaysBetween(first.Date, last.Date, loc)),
		EntryCount:     len(sorted),
		LatestDate:     last.Date,
	}
	st.WeeklyTrend = st.TotalChange / float64(st.DaysTracked) * 7
	st.GoalProgress = GoalProgress(st.TotalChange, profile)
	st.Streak = Streak(sorted, loc)
	if profile.HasGoal() {
		remaining := st.CurrentWeight - *profile.GoalWeight
		st.RemainingToGoal = &remaining
	}
	return st, true
}

// SortedByDate returns a copy of entries in ascending date order. Entries
// sharing a timestamp are ordered by ID.
func SortedByDate(entries []WeightEntry) []WeightEntry {
	out := make([]WeightEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// GoalProgress returns the share of the planned change achieved, in [0, 100].
// Only a loss counts as progress. A goal at or above the start weight is
// complete as soon as any loss occurs.
func GoalProgress(totalChange float64, profile *Profile) float64 {
	if !profile.HasGoal() || totalChange >= 0 || math.IsNaN(totalChange) {
		return 0
	}
	planned := profile.StartWeight - *profile.GoalWeight
	if planned <= 0 || math.IsNaN(planned) {
		return 100
	}
	return math.Min(100, math.Abs(totalChange)*100/planned)
}

// Streak counts consecutive calendar days ending at the latest entry of
// ascending. Entries on the same day as their neighbour neither extend nor
// break the run.
func Streak(ascending []WeightEntry, loc *time.Location) int {
	if len(ascending) == 0 {
		return 0
	}
	streak := 1
	for i := len(ascending) - 1; i > 0; i-- {
		switch DaysBetween(ascending[i-1].Date, ascending[i].Date, loc) {
		case 0:
			continue
		case 1:
			streak++
		default:
			return streak
		}
	}
	return streak
}
