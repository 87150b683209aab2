package domain_test

import (
	"math"
	"testing"
	"time"

	"weighttrack/internal/domain"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 8, 30, 0, 0, time.UTC)
}

func goal(v float64) *float64 { return &v }

func entriesOn(weights []float64, start time.Time) []domain.WeightEntry {
	out := make([]domain.WeightEntry, len(weights))
	for i, w := range weights {
		out[i] = domain.WeightEntry{ID: int64(i + 1), UserID: 1, Date: start.AddDate(0, 0, i), Weight: w}
	}
	return out
}

func TestComputeStats_NoData(t *testing.T) {
	p := &domain.Profile{ID: 1, StartWeight: 80}
	if _, ok := domain.ComputeStats(nil, p, time.UTC); ok {
		t.Fatal("expected no stats for empty entries")
	}
	if _, ok := domain.ComputeStats(entriesOn([]float64{80}, day(2024, 1, 1)), nil, time.UTC); ok {
		t.Fatal("expected no stats without profile")
	}
}

func TestComputeStats_ThreeConsecutiveDays(t *testing.T) {
	p := &domain.Profile{ID: 1, StartWeight: 80, GoalWeight: goal(70)}
	entries := entriesOn([]float64{80, 79, 78}, day(2024, 3, 1))
	// Shuffle so the engine has to sort.
	entries[0], entries[2] = entries[2], entries[0]

	st, ok := domain.ComputeStats(entries, p, time.UTC)
	if !ok {
		t.Fatal("expected stats")
	}
	if st.CurrentWeight != 78 {
		t.Errorf("CurrentWeight = %v; want 78", st.CurrentWeight)
	}
	if !almostEqual(st.TotalChange, -2, 1e-9) {
		t.Errorf("TotalChange = %v; want -2", st.TotalChange)
	}
	if !almostEqual(st.GoalProgress, 20, 1e-9) {
		t.Errorf("GoalProgress = %v; want 20", st.GoalProgress)
	}
	if st.Streak != 3 {
		t.Errorf("Streak = %d; want 3", st.Streak)
	}
	if st.DaysTracked != 2 {
		t.Errorf("DaysTracked = %d; want 2", st.DaysTracked)
	}
	if !almostEqual(st.WeeklyTrend, -7, 1e-9) {
		t.Errorf("WeeklyTrend = %v; want -7", st.WeeklyTrend)
	}
	if st.RemainingToGoal == nil || !almostEqual(*st.RemainingToGoal, 8, 1e-9) {
		t.Errorf("RemainingToGoal = %v; want 8", st.RemainingToGoal)
	}
	if entries[0].Weight != 78 {
		t.Error("input slice was reordered")
	}
}

func TestComputeStats_SingleEntryNoGoal(t *testing.T) {
	p := &domain.Profile{ID: 1, StartWeight: 90}
	st, ok := domain.ComputeStats(entriesOn([]float64{90}, day(2024, 1, 1)), p, time.UTC)
	if !ok {
		t.Fatal("expected stats")
	}
	if st.TotalChange != 0 || st.GoalProgress != 0 || st.WeeklyTrend != 0 {
		t.Errorf("unexpected stats: %+v", st)
	}
	if st.Streak != 1 {
		t.Errorf("Streak = %d; want 1", st.Streak)
	}
	if st.DaysTracked != 1 {
		t.Errorf("DaysTracked = %d; want 1", st.DaysTracked)
	}
	if st.RemainingToGoal != nil {
		t.Error("expected nil RemainingToGoal without goal")
	}
}

func TestComputeStats_Idempotent(t *testing.T) {
	p := &domain.Profile{ID: 1, StartWeight: 100, GoalWeight: goal(90)}
	entries := entriesOn([]float64{100, 99.5, 99, 98.2, 98.4}, day(2024, 5, 10))
	a, _ := domain.ComputeStats(entries, p, time.UTC)
	b, _ := domain.ComputeStats(entries, p, time.UTC)
	if a.TotalChange != b.TotalChange || a.Streak != b.Streak || a.GoalProgress != b.GoalProgress || a.WeeklyTrend != b.WeeklyTrend {
		t.Fatalf("stats differ between calls: %+v vs %+v", a, b)
	}
}

func TestStreak(t *testing.T) {
	base := day(2024, 2, 1)
	tests := []struct {
		name    string
		offsets []int
		want    int
	}{
		{"single", []int{0}, 1},
		{"five consecutive", []int{0, 1, 2, 3, 4}, 5},
		{"gap before latest", []int{0, 1, 2, 5}, 1},
		{"gap in the middle", []int{0, 3, 4, 5}, 3},
		{"same day pair is skipped", []int{0, 1, 1, 2}, 3},
		{"month boundary", []int{27, 28, 29, 30}, 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entries := make([]domain.WeightEntry, len(tc.offsets))
			for i, off := range tc.offsets {
				entries[i] = domain.WeightEntry{ID: int64(i + 1), Date: base.AddDate(0, 0, off).Add(time.Duration(i) * time.Minute), Weight: 80}
			}
			if got := domain.Streak(domain.SortedByDate(entries), time.UTC); got != tc.want {
				t.Errorf("Streak = %d; want %d", got, tc.want)
			}
		})
	}
}

func TestStreak_EndingToday(t *testing.T) {
	today := time.Now()
	for n := 1; n <= 10; n++ {
		entries := make([]domain.WeightEntry, n)
		for i := range n {
			entries[i] = domain.WeightEntry{ID: int64(i + 1), Date: today.AddDate(0, 0, -i), Weight: 70}
		}
		if got := domain.Streak(domain.SortedByDate(entries), time.Local); got != n {
			t.Errorf("n=%d: Streak = %d", n, got)
		}
	}
}

func TestWeeklyTrendSignMatchesTotalChange(t *testing.T) {
	p := &domain.Profile{ID: 1, StartWeight: 80}
	tests := []struct {
		name    string
		weights []float64
	}{
		{"loss", []float64{80, 79, 78.5}},
		{"gain", []float64{80, 80.4, 81}},
		{"flat", []float64{80, 79, 80}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st, _ := domain.ComputeStats(entriesOn(tc.weights, day(2024, 1, 1)), p, time.UTC)
			if math.Signbit(st.WeeklyTrend) != math.Signbit(st.TotalChange) || (st.WeeklyTrend == 0) != (st.TotalChange == 0) {
				t.Errorf("trend %v does not match change %v", st.WeeklyTrend, st.TotalChange)
			}
		})
	}
}

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name   string
		start  float64
		goal   *float64
		change float64
		want   float64
	}{
		{"no goal", 80, nil, -5, 0},
		{"gain", 80, goal(70), 1, 0},
		{"no change", 80, goal(70), 0, 0},
		{"half way", 80, goal(70), -5, 50},
		{"overshoot capped", 80, goal(70), -15, 100},
		{"goal equals start with loss", 80, goal(80), -0.5, 100},
		{"goal equals start without loss", 80, goal(80), 0, 0},
		{"goal above start", 80, goal(85), -1, 100},
		{"NaN change", 80, goal(70), math.NaN(), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &domain.Profile{StartWeight: tc.start, GoalWeight: tc.goal}
			got := domain.GoalProgress(tc.change, p)
			if math.IsNaN(got) || got < 0 || got > 100 {
				t.Fatalf("GoalProgress out of range: %v", got)
			}
			if !almostEqual(got, tc.want, 1e-9) {
				t.Errorf("GoalProgress = %v; want %v", got, tc.want)
			}
		})
	}
}
