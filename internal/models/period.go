package models

import "time"

// PeriodLock is the single row of the period_locks table.
type PeriodLock struct {
	ClosedThrough time.Time `db:"closed_through"`
	ClosedAt      time.Time `db:"closed_at"`
	ClosedBy      string    `db:"closed_by"`
}
