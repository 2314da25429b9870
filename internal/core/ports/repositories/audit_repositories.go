package repositories

import (
	"context"
	"time"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
)

// AuditFilter narrows an audit trail query. Zero values match everything.
type AuditFilter struct {
	EntityID string
	Action   domain.AuditAction
	Since    time.Time
	Limit    int
	Offset   int
}

// AuditRepository stores and lists audit events.
type AuditRepository interface {
	SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error
	ListAuditEvents(ctx context.Context, filter AuditFilter) ([]domain.AuditEvent, error)
}
