package domain

import (
	"fmt"
	"math"
)

// Mood is the deterministic outcome of Decide.
type Mood string

const (
	MoodPromptLog   Mood = "prompt_log"
	MoodGoalReached Mood = "goal_reached"
	MoodLosing      Mood = "losing"
	MoodGaining     Mood = "gaining"
	MoodSteady      Mood = "steady"
)

// Category groups message templates by tone.
type Category string

const (
	CategoryCelebrate Category = "celebrate"
	CategoryGood      Category = "good"
	CategoryNeutral   Category = "neutral"
	CategoryWarning   Category = "warning"
	CategoryGoal      Category = "goal"
)

// Motivation is the message shown on the dashboard.
type Motivation struct {
	Mood     Mood     `json:"mood"`
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

// Template renders one message of a category.
type Template struct {
	Category Category
	Render   func(st Stats, p *Profile) string
}

// Decide picks the mood for the given state. It is pure; the randomness lives
// in Select.
func Decide(st Stats, p *Profile, loggedToday bool) Mood {
	switch {
	case !loggedToday:
		return MoodPromptLog
	case p.HasGoal() && st.CurrentWeight <= *p.GoalWeight:
		return MoodGoalReached
	case st.WeeklyTrend < 0:
		return MoodLosing
	case st.WeeklyTrend > 0 && p.HasGoal():
		return MoodGaining
	default:
		return MoodSteady
	}
}

// Picker is the source of uniform draws. *rand.Rand from math/rand/v2
// satisfies it.
type Picker interface {
	IntN(n int) int
}

// Select draws one template uniformly from the pool of mood and renders it.
func Select(mood Mood, st Stats, p *Profile, pick Picker) Motivation {
	pool := Pool(mood)
	t := pool[0]
	if len(pool) > 1 {
		t = pool[pick.IntN(len(pool))]
	}
	return Motivation{Mood: mood, Category: t.Category, Text: t.Render(st, p)}
}

// Pool returns the templates a mood draws from.
func Pool(mood Mood) []Template {
	switch mood {
	case MoodPromptLog:
		return neutralTemplates
	case MoodGoalReached:
		return []Template{goalReachedTemplate}
	case MoodLosing:
		return concat(celebrateTemplates, goodTemplates)
	case MoodGaining:
		return warningTemplates
	default:
		return concat(goodTemplates, neutralTemplates)
	}
}

func concat(a, b []Template) []Template {
	out := make([]Template, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func fixed(c Category, text string) Template {
	return Template{Category: c, Render: func(Stats, *Profile) string { return text }}
}

func remaining(st Stats) float64 {
	if st.RemainingToGoal == nil {
		return 0
	}
	return math.Max(0, *st.RemainingToGoal)
}

var goalReachedTemplate = fixed(CategoryGoal, "Goal reached! You did it. Time to set a new target or hold the line.")

var celebrateTemplates = []Template{
	{CategoryCelebrate, func(st Stats, _ *Profile) string {
		return fmt.Sprintf("%d days in a row. That streak is doing the heavy lifting.", st.Streak)
	}},
	{CategoryCelebrate, func(st Stats, _ *Profile) string {
		return fmt.Sprintf("Down %.1f kg a week on average. Keep it rolling!", math.Abs(st.WeeklyTrend))
	}},
	{CategoryCelebrate, func(st Stats, p *Profile) string {
		if !p.HasGoal() {
			return fmt.Sprintf("%.1f kg gone since you started. Outstanding.", math.Abs(st.TotalChange))
		}
		return fmt.Sprintf("%.0f%% of the way there. Only %.1f kg to go!", st.GoalProgress, remaining(st))
	}},
}

var goodTemplates = []Template{
	fixed(CategoryGood, "Steady wins. One entry at a time."),
	{CategoryGood, func(st Stats, _ *Profile) string {
		return fmt.Sprintf("Logged for %d straight days. Consistency pays.", st.Streak)
	}},
	fixed(CategoryGood, "Nice work showing up today."),
}

var neutralTemplates = []Template{
	fixed(CategoryNeutral, "Step on the scale and log today's weight."),
	fixed(CategoryNeutral, "A quick weigh-in keeps the trend honest."),
	{CategoryNeutral, func(st Stats, _ *Profile) string {
		if st.Streak > 1 {
			return fmt.Sprintf("Don't break a %d day streak. Log today!", st.Streak)
		}
		return "Every streak starts with a single entry. Log today!"
	}},
}

var warningTemplates = []Template{
	{CategoryWarning, func(st Stats, _ *Profile) string {
		return fmt.Sprintf("Trending up %.1f kg a week. Small course corrections add up.", st.WeeklyTrend)
	}},
	{CategoryWarning, func(st Stats, _ *Profile) string {
		return fmt.Sprintf("%.1f kg from your goal. A good day tomorrow gets you back on track.", remaining(st))
	}},
	fixed(CategoryWarning, "Fluctuations happen. Look at the week, not the day."),
}
