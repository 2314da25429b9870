package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
)

// ClosePeriod locks the books through the given date (inclusive). Posting
// into a locked date fails with ErrPeriodClosed. The lock only moves
// forward. It returns the previous and new locks.
func (e *Engine) ClosePeriod(ctx context.Context, through time.Time, actor string) (previous, current domain.PeriodLock, err error) {
	if through.IsZero() {
		return domain.PeriodLock{}, domain.PeriodLock{}, fmt.Errorf("%w: closing date is required", ErrInvalidInput)
	}
	through = domain.DateOnly(through)

	e.mu.Lock()
	defer e.mu.Unlock()

	previous = e.lock
	if !previous.IsZero() && through.Before(previous.ClosedThrough) {
		return domain.PeriodLock{}, domain.PeriodLock{}, fmt.Errorf("%w: books are already closed through %s",
			ErrInvalidState, previous.ClosedThrough.Format(time.DateOnly))
	}
	for _, id := range e.journalOrder {
		if j := e.journals[id]; j.Status == domain.Draft && !j.JournalDate.After(through) {
			return domain.PeriodLock{}, domain.PeriodLock{}, fmt.Errorf("%w: draft %s is dated inside the period",
				ErrInvalidState, j.JournalID)
		}
	}

	current = domain.PeriodLock{ClosedThrough: through, ClosedAt: e.now().UTC(), ClosedBy: actor}
	if e.store != nil {
		if err := e.store.SavePeriodLock(ctx, current); err != nil {
			return domain.PeriodLock{}, domain.PeriodLock{}, storeError("save period lock", err)
		}
	}
	e.lock = current
	return previous, current, nil
}

// PeriodLock returns the current lock. It is zero when no period is closed.
func (e *Engine) PeriodLock() domain.PeriodLock {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lock
}
