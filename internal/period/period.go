// Package period maps timestamps to the week, month and day buckets the
// rollup engine routes step counts into.
package period

import "time"

// WeekOf returns the year-aligned week number of t, clamped to 52.
//
// The week is the aligned week of year (week 1 starts on January 1st,
// every 7 days a new week), not the strict ISO-8601 week. A 53rd aligned
// week collapses into week 52 so that every year has exactly 52 buckets.
// A zero time returns 0.
func WeekOf(t time.Time) int {
	if t.IsZero() {
		return 0
	}
	week := ((t.YearDay() - 1) / 7) + 1
	if week > 52 {
		week = 52
	}
	return week
}

// MonthOf returns the calendar month of t (1-12), or 0 for a zero time.
func MonthOf(t time.Time) int {
	if t.IsZero() {
		return 0
	}
	return int(t.Month())
}

// YearOf returns the calendar year of t, or 0 for a zero time.
func YearOf(t time.Time) int {
	if t.IsZero() {
		return 0
	}
	return t.Year()
}

// WeekStart rolls t back to the preceding-or-same Monday at midnight.
func WeekStart(t time.Time) time.Time {
	d := DayKey(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return d.AddDate(0, 0, -offset)
}

// WeekEnd rolls t forward to the following-or-same Sunday at midnight.
func WeekEnd(t time.Time) time.Time {
	d := DayKey(t)
	offset := (7 - int(d.Weekday())) % 7 // Sunday=0
	return d.AddDate(0, 0, offset)
}

// DayKey truncates t to its calendar date, dropping time-of-day.
func DayKey(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
// The comparison covers year, month and day; comparing day-of-year
// alone would conflate dates across years.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
