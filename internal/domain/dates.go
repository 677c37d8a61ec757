package domain

import "time"

// DateLayout is the canonical calendar-day format used across storage
// and wire boundaries.
const DateLayout = "2006-01-02"

// DateOnly truncates t to UTC midnight of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Sunday on or before t (Sunday-anchored weeks).
func WeekStart(t time.Time) time.Time {
	day := DateOnly(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// WeekEnd returns the Saturday of t's Sunday-anchored week.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 6)
}

// SameWeek reports whether a and b fall in the same Sunday-anchored week.
func SameWeek(a, b time.Time) bool {
	return WeekStart(a).Equal(WeekStart(b))
}

// IsWeekendDay reports whether t is a Saturday or Sunday.
func IsWeekendDay(t time.Time) bool {
	wd := DateOnly(t).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
