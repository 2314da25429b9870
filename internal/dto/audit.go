package dto

import (
	"github.com/finpulse/finpulse_ledger/internal/core/domain"
)

// ListAuditEventsParams defines query parameters for the audit trail.
type ListAuditEventsParams struct {
	EntityID string             `form:"entityID"`
	Action   domain.AuditAction `form:"action"`
	Since    string             `form:"since" binding:"omitempty,datetime=2006-01-02"`
	Limit    int                `form:"limit,default=50" binding:"min=0,max=500"`
	Offset   int                `form:"offset,default=0" binding:"min=0"`
}

// ListAuditEventsResponse wraps a page of audit events. Each event carries a
// "kind" tag naming the shape of its "change" snapshot.
type ListAuditEventsResponse struct {
	Events []domain.AuditEvent `json:"events"`
}
