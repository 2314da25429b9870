package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	portsrepo "github.com/finpulse/finpulse_ledger/internal/core/ports/repositories"
	portssvc "github.com/finpulse/finpulse_ledger/internal/core/ports/services"
	"github.com/finpulse/finpulse_ledger/internal/dto"
	"github.com/google/uuid"
)

type auditService struct {
	BaseService
	repo portsrepo.AuditRepository
	now  func() time.Time
}

// AuditServiceOption is a functional option for configuring the audit service
type AuditServiceOption func(*auditService)

// WithAuditClock replaces time.Now for event timestamps.
func WithAuditClock(now func() time.Time) AuditServiceOption {
	return func(s *auditService) { s.now = now }
}

// NewAuditService creates the audit trail service backed by repo.
func NewAuditService(repo portsrepo.AuditRepository, options ...AuditServiceOption) portssvc.AuditSvcFacade {
	svc := &auditService{repo: repo, now: time.Now}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// Record saves an audit event. A failure is logged and swallowed; the ledger
// change it describes has already been committed.
func (s *auditService) Record(ctx context.Context, action domain.AuditAction, entityID, actor string, change domain.AuditChange) {
	event := domain.AuditEvent{
		EventID:  uuid.NewString(),
		Action:   action,
		EntityID: entityID,
		Actor:    actor,
		At:       s.now().UTC(),
		Change:   change,
	}
	if err := s.repo.SaveAuditEvent(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to record audit event",
			slog.String("action", string(action)),
			slog.String("entity_id", entityID))
		return
	}
	s.LogDebug(ctx, "Audit event recorded", slog.String("action", string(action)), slog.String("event_id", event.EventID))
}

func (s *auditService) ListAuditEvents(ctx context.Context, params dto.ListAuditEventsParams) ([]domain.AuditEvent, error) {
	since, err := parseRequestDate(params.Since)
	if err != nil {
		return nil, err
	}
	events, err := s.repo.ListAuditEvents(ctx, portsrepo.AuditFilter{
		EntityID: params.EntityID,
		Action:   params.Action,
		Since:    since,
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit events")
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}
	return events, nil
}
