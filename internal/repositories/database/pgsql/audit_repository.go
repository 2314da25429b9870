package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	portsrepo "github.com/finpulse/finpulse_ledger/internal/core/ports/repositories"
	"github.com/finpulse/finpulse_ledger/internal/models"
	"github.com/finpulse/finpulse_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAuditRepository stores the audit trail in PostgreSQL.
type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) *PgxAuditRepository {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

// SaveAuditEvent inserts one audit event.
func (r *PgxAuditRepository) SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	m, err := mapping.ToModelAuditEvent(event)
	if err != nil {
		return err
	}
	_, err = r.Pool.Exec(ctx, `
		INSERT INTO audit_events (event_id, action, entity_id, actor, at, change_kind, change)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, m.EventID, m.Action, m.EntityID, m.Actor, m.At, m.ChangeKind, m.Change)
	if err != nil {
		return fmt.Errorf("failed to insert audit event %s: %w", m.EventID, err)
	}
	return nil
}

// ListAuditEvents returns events matching filter, newest first.
func (r *PgxAuditRepository) ListAuditEvents(ctx context.Context, filter portsrepo.AuditFilter) ([]domain.AuditEvent, error) {
	query, args := buildAuditQuery(filter)
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}
	defer rows.Close()

	var out []domain.AuditEvent
	for rows.Next() {
		var m models.AuditEvent
		if err := rows.Scan(&m.EventID, &m.Action, &m.EntityID, &m.Actor, &m.At, &m.ChangeKind, &m.Change); err != nil {
			return nil, fmt.Errorf("failed to scan audit event row: %w", err)
		}
		event, err := mapping.ToDomainAuditEvent(m)
		if err != nil {
			return nil, err
		}
		out = append(out, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit event rows: %w", err)
	}
	return out, nil
}

func buildAuditQuery(filter portsrepo.AuditFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	add := func(clause string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if filter.EntityID != "" {
		add("entity_id = $%d", filter.EntityID)
	}
	if filter.Action != "" {
		add("action = $%d", string(filter.Action))
	}
	if !filter.Since.IsZero() {
		add("at >= $%d", filter.Since)
	}

	var sb strings.Builder
	sb.WriteString("SELECT event_id, action, entity_id, actor, at, change_kind, change FROM audit_events")
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY seq DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}
	return sb.String(), args
}
