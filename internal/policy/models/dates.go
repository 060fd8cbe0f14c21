package models

import "time"

// DateOf truncates t to its calendar date at UTC midnight. Policy dates and "today"
// are compared at day granularity only.
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today is DateOf(now).
func Today(now time.Time) time.Time {
	return DateOf(now)
}

// wholeYearsBetween counts completed years from start to end, calendar aware.
func wholeYearsBetween(start, end time.Time) int {
	years := end.Year() - start.Year()
	if end.Month() < start.Month() || (end.Month() == start.Month() && end.Day() < start.Day()) {
		years--
	}
	return years
}
