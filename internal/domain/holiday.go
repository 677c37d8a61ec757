package domain

import "time"

// HolidayCalendar decides which calendar days count as holidays for
// strategy selection and workload accounting. Injected so regional
// calendars can vary without touching the algorithm.
type HolidayCalendar interface {
	IsHoliday(day time.Time) bool
}

// USHolidayCalendar covers the fixed company holiday set: New Year's
// Day, Memorial Day, Independence Day, Labor Day and Christmas.
type USHolidayCalendar struct{}

func (USHolidayCalendar) IsHoliday(day time.Time) bool {
	d := DateOnly(day)
	switch {
	case d.Month() == time.January && d.Day() == 1:
		return true
	case d.Month() == time.July && d.Day() == 4:
		return true
	case d.Month() == time.December && d.Day() == 25:
		return true
	case d.Equal(memorialDay(d.Year())):
		return true
	case d.Equal(laborDay(d.Year())):
		return true
	}
	return false
}

// memorialDay is the last Monday of May.
func memorialDay(year int) time.Time {
	d := time.Date(year, time.May, 31, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// laborDay is the first Monday of September.
func laborDay(year int) time.Time {
	d := time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// NoHolidays is a calendar with no holidays, useful for tests.
type NoHolidays struct{}

func (NoHolidays) IsHoliday(time.Time) bool { return false }
