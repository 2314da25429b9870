package services

import (
	"context"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/finpulse/finpulse_ledger/internal/dto"
)

// AuditRecorderSvc appends events to the audit trail. Recording never fails
// the caller's operation.
type AuditRecorderSvc interface {
	Record(ctx context.Context, action domain.AuditAction, entityID, actor string, change domain.AuditChange)
}

// AuditReaderSvc reads the audit trail, newest first.
type AuditReaderSvc interface {
	ListAuditEvents(ctx context.Context, params dto.ListAuditEventsParams) ([]domain.AuditEvent, error)
}

// AuditSvcFacade combines recording and reading the audit trail.
type AuditSvcFacade interface {
	AuditRecorderSvc
	AuditReaderSvc
}
