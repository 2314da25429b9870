package models

import "time"

// AuditEvent is a row of the audit_events table.
type AuditEvent struct {
	EventID    string    `db:"event_id"`
	Action     string    `db:"action"`
	EntityID   string    `db:"entity_id"`
	Actor      string    `db:"actor"`
	At         time.Time `db:"at"`
	ChangeKind string    `db:"change_kind"`
	Change     []byte    `db:"change"` // JSONB, nil when there is no change
}
