package domain

import "time"

// DayLayout is the wire format of a calendar day.
const DayLayout = "2006-01-02"

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}

// DayOf truncates t to midnight of its calendar day in loc.
// A nil loc means time.Local.
func DayOf(t time.Time, loc *time.Location) time.Time {
	loc = location(loc)
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return DaysBetween(a, b, loc) == 0
}

// DaysBetween returns the number of calendar days from a to b in loc.
// The count is taken on civil dates, so a DST shift never turns one day into
// zero or two.
func DaysBetween(a, b time.Time, loc *time.Location) int {
	loc = location(loc)
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// DayString formats the calendar day of t in loc.
func DayString(t time.Time, loc *time.Location) string {
	return t.In(location(loc)).Format(DayLayout)
}

// ParseDay parses a YYYY-MM-DD string as midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DayLayout, s, location(loc))
}

// DayBounds returns the half-open interval [start, end) covering the calendar
// day of t in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := DayOf(t, loc)
	return start, start.AddDate(0, 0, 1)
}
