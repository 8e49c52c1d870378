package workday

import "time"

// Clock converts wall time to the office's local time using a fixed UTC
// offset (no daylight saving) and classifies arrivals against the workday
// cutoff.
type Clock struct {
	OffsetHours  int
	CutoffHour   int
	CutoffMinute int
}

// NewClock returns a clock with the given UTC offset and an "HH:MM" cutoff
// already split into parts.
func NewClock(offsetHours, cutoffHour, cutoffMinute int) Clock {
	return Clock{
		OffsetHours:  offsetHours,
		CutoffHour:   cutoffHour,
		CutoffMinute: cutoffMinute,
	}
}

// Now returns the current office-local time.
func (c Clock) Now() time.Time {
	return time.Now().UTC().Add(time.Duration(c.OffsetHours) * time.Hour)
}

// IsLate reports whether the local timestamp falls strictly after the
// cutoff. Exactly at the cutoff is on time.
func (c Clock) IsLate(local time.Time) bool {
	cutoff := time.Date(local.Year(), local.Month(), local.Day(), c.CutoffHour, c.CutoffMinute, 0, 0, local.Location())
	return local.After(cutoff)
}

// MonthStart returns midnight on the first day of t's month. It bounds the
// window over which late-with-reason events are counted.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
