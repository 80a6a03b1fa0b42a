package domain

import "time"

// AvailabilityDate marks a calendar day open for equipment reservation.
// Absence of an entry means the day is unavailable.
type AvailabilityDate struct {
	ID          string
	Date        time.Time
	IsAvailable bool
}

// DayOf normalizes a timestamp to midnight UTC; the ledger works at day
// granularity and ignores time of day.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
