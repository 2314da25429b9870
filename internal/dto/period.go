package dto

import (
	"time"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
)

// ClosePeriodRequest closes the books through a date, inclusive.
type ClosePeriodRequest struct {
	Through string `json:"through" binding:"required,datetime=2006-01-02"`
}

// PeriodLockResponse defines the data returned for the period lock.
type PeriodLockResponse struct {
	Closed        bool       `json:"closed"`
	ClosedThrough string     `json:"closedThrough,omitempty"`
	ClosedAt      *time.Time `json:"closedAt,omitempty"`
	ClosedBy      string     `json:"closedBy,omitempty"`
}

// ToPeriodLockResponse converts a domain.PeriodLock.
func ToPeriodLockResponse(lock domain.PeriodLock) PeriodLockResponse {
	if lock.IsZero() {
		return PeriodLockResponse{}
	}
	closedAt := lock.ClosedAt
	return PeriodLockResponse{
		Closed:        true,
		ClosedThrough: lock.ClosedThrough.Format(DateLayout),
		ClosedAt:      &closedAt,
		ClosedBy:      lock.ClosedBy,
	}
}
