package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/finpulse/finpulse_ledger/internal/models"
)

// ToModelAuditEvent converts a domain AuditEvent into a row, encoding the
// typed change as JSON next to its kind.
func ToModelAuditEvent(d domain.AuditEvent) (models.AuditEvent, error) {
	m := models.AuditEvent{
		EventID:  d.EventID,
		Action:   string(d.Action),
		EntityID: d.EntityID,
		Actor:    d.Actor,
		At:       d.At,
	}
	if d.Change != nil {
		raw, err := json.Marshal(d.Change)
		if err != nil {
			return models.AuditEvent{}, fmt.Errorf("encode audit change: %w", err)
		}
		m.ChangeKind = string(d.Change.Kind())
		m.Change = raw
	}
	return m, nil
}

// ToDomainAuditEvent converts a row back into a domain AuditEvent.
func ToDomainAuditEvent(m models.AuditEvent) (domain.AuditEvent, error) {
	change, err := domain.DecodeAuditChange(domain.AuditChangeKind(m.ChangeKind), m.Change)
	if err != nil {
		return domain.AuditEvent{}, fmt.Errorf("decode audit change for event %s: %w", m.EventID, err)
	}
	return domain.AuditEvent{
		EventID:  m.EventID,
		Action:   domain.AuditAction(m.Action),
		EntityID: m.EntityID,
		Actor:    m.Actor,
		At:       m.At,
		Change:   change,
	}, nil
}
