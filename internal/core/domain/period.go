package domain

import "time"

// PeriodLock records the closing of the books through a date (inclusive).
type PeriodLock struct {
	ClosedThrough time.Time `json:"closedThrough"`
	ClosedAt      time.Time `json:"closedAt"`
	ClosedBy      string    `json:"closedBy"`
}

// IsZero reports whether no period has been closed yet.
func (p PeriodLock) IsZero() bool {
	return p.ClosedThrough.IsZero()
}

// Covers reports whether date falls on or before the closed-through date.
func (p PeriodLock) Covers(date time.Time) bool {
	if p.IsZero() {
		return false
	}
	return !DateOnly(date).After(DateOnly(p.ClosedThrough))
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
