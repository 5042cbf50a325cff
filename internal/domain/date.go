package domain

import "time"

// Day truncates t to a calendar date (midnight UTC). All event window and
// attendance comparisons operate on days, never on wall-clock instants.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in UTC.
func Today() time.Time {
	return Day(time.Now().UTC())
}

// DaysBetween returns every calendar day from start to end inclusive, in
// order. It returns nil when end precedes start.
func DaysBetween(start, end time.Time) []time.Time {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return nil
	}
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
