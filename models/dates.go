package models

import "time"

const DateLayout = "2006-01-02"

// IsSelectable reports whether a fulfillment date can still be chosen.
// Comparison is date-only: any time today counts as selectable.
func IsSelectable(candidate, today time.Time) bool {
	c := truncateToDay(candidate)
	t := truncateToDay(today)
	return !c.Before(t)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
