// Package memory holds in-process repositories used when no database is configured.
package memory

import (
	"context"
	"sync"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	portsrepo "github.com/finpulse/finpulse_ledger/internal/core/ports/repositories"
)

// AuditRepository keeps the audit trail in memory.
type AuditRepository struct {
	mu     sync.RWMutex
	events []domain.AuditEvent
}

// NewAuditRepository creates an empty in-memory audit trail.
func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

var _ portsrepo.AuditRepository = (*AuditRepository)(nil)

// SaveAuditEvent appends event.
func (r *AuditRepository) SaveAuditEvent(_ context.Context, event domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// ListAuditEvents returns events matching filter, newest first.
func (r *AuditRepository) ListAuditEvents(_ context.Context, filter portsrepo.AuditFilter) ([]domain.AuditEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.AuditEvent, 0)
	skipped := 0
	for i := len(r.events) - 1; i >= 0; i-- {
		e := r.events[i]
		if filter.EntityID != "" && e.EntityID != filter.EntityID {
			continue
		}
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		if !filter.Since.IsZero() && e.At.Before(filter.Since) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}
