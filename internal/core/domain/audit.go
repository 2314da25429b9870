package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AuditAction names what happened to an entity.
type AuditAction string

const (
	ActionAccountCreate  AuditAction = "account.create"
	ActionAccountStatus  AuditAction = "account.status"
	ActionAccountMove    AuditAction = "account.move"
	ActionJournalDraft   AuditAction = "journal.draft"
	ActionJournalDiscard AuditAction = "journal.discard"
	ActionJournalPost    AuditAction = "journal.post"
	ActionJournalReverse AuditAction = "journal.reverse"
	ActionTemplateCreate AuditAction = "template.create"
	ActionPeriodClose    AuditAction = "period.close"
)

// AuditChangeKind tags the concrete type of an AuditChange.
type AuditChangeKind string

const (
	ChangeAccount  AuditChangeKind = "account"
	ChangeJournal  AuditChangeKind = "journal"
	ChangeTemplate AuditChangeKind = "template"
	ChangePeriod   AuditChangeKind = "period"
)

// AuditChange is a typed before/after snapshot. Implementations are
// AccountChange, JournalChange, TemplateChange and PeriodChange.
type AuditChange interface {
	Kind() AuditChangeKind
}

// AccountSnapshot captures the audited fields of an account.
type AccountSnapshot struct {
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	AccountType     AccountType     `json:"accountType"`
	ParentAccountID string          `json:"parentAccountID,omitempty"`
	Status          AccountStatus   `json:"status"`
	Balance         decimal.Decimal `json:"balance"`
}

// SnapshotAccount builds an AccountSnapshot.
func SnapshotAccount(a Account) *AccountSnapshot {
	return &AccountSnapshot{
		Code:            a.Code,
		Name:            a.Name,
		AccountType:     a.AccountType,
		ParentAccountID: a.ParentAccountID,
		Status:          a.Status,
		Balance:         a.Balance,
	}
}

type AccountChange struct {
	Before *AccountSnapshot `json:"before,omitempty"`
	After  *AccountSnapshot `json:"after,omitempty"`
}

func (AccountChange) Kind() AuditChangeKind { return ChangeAccount }

// JournalSnapshot captures the audited fields of a journal entry.
type JournalSnapshot struct {
	Status          JournalStatus   `json:"status"`
	Reference       string          `json:"reference"`
	JournalDate     time.Time       `json:"journalDate"`
	Amount          decimal.Decimal `json:"amount"`
	LineCount       int             `json:"lineCount"`
	LinkedJournalID string          `json:"linkedJournalID,omitempty"`
}

// SnapshotJournal builds a JournalSnapshot.
func SnapshotJournal(j JournalEntry) *JournalSnapshot {
	s := &JournalSnapshot{
		Status:      j.Status,
		Reference:   j.Reference,
		JournalDate: j.JournalDate,
		Amount:      j.Amount(),
		LineCount:   len(j.Lines),
	}
	switch {
	case j.ReversingJournalID != nil:
		s.LinkedJournalID = *j.ReversingJournalID
	case j.OriginalJournalID != nil:
		s.LinkedJournalID = *j.OriginalJournalID
	}
	return s
}

type JournalChange struct {
	Before *JournalSnapshot `json:"before,omitempty"`
	After  *JournalSnapshot `json:"after,omitempty"`
}

func (JournalChange) Kind() AuditChangeKind { return ChangeJournal }

type TemplateChange struct {
	Name      string `json:"name"`
	LineCount int    `json:"lineCount"`
}

func (TemplateChange) Kind() AuditChangeKind { return ChangeTemplate }

type PeriodChange struct {
	Before *time.Time `json:"before,omitempty"`
	After  time.Time  `json:"after"`
}

func (PeriodChange) Kind() AuditChangeKind { return ChangePeriod }

// AuditEvent is one entry in the audit trail.
type AuditEvent struct {
	EventID  string      `json:"eventID"`
	Action   AuditAction `json:"action"`
	EntityID string      `json:"entityID"`
	Actor    string      `json:"actor"`
	At       time.Time   `json:"at"`
	Change   AuditChange `json:"-"`
}

type auditEventJSON struct {
	EventID  string          `json:"eventID"`
	Action   AuditAction     `json:"action"`
	EntityID string          `json:"entityID"`
	Actor    string          `json:"actor"`
	At       time.Time       `json:"at"`
	Kind     AuditChangeKind `json:"kind"`
	Change   json.RawMessage `json:"change"`
}

// MarshalJSON writes the change next to its kind tag.
func (e AuditEvent) MarshalJSON() ([]byte, error) {
	out := auditEventJSON{
		EventID:  e.EventID,
		Action:   e.Action,
		EntityID: e.EntityID,
		Actor:    e.Actor,
		At:       e.At,
		Change:   json.RawMessage("null"),
	}
	if e.Change != nil {
		raw, err := json.Marshal(e.Change)
		if err != nil {
			return nil, err
		}
		out.Kind = e.Change.Kind()
		out.Change = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores the concrete change type from its kind tag.
func (e *AuditEvent) UnmarshalJSON(data []byte) error {
	var in auditEventJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	change, err := DecodeAuditChange(in.Kind, in.Change)
	if err != nil {
		return err
	}
	*e = AuditEvent{
		EventID:  in.EventID,
		Action:   in.Action,
		EntityID: in.EntityID,
		Actor:    in.Actor,
		At:       in.At,
		Change:   change,
	}
	return nil
}

// DecodeAuditChange decodes raw into the change type named by kind.
// An empty kind decodes to a nil change.
func DecodeAuditChange(kind AuditChangeKind, raw []byte) (AuditChange, error) {
	var change AuditChange
	switch kind {
	case "":
		return nil, nil
	case ChangeAccount:
		var c AccountChange
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		change = c
	case ChangeJournal:
		var c JournalChange
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		change = c
	case ChangeTemplate:
		var c TemplateChange
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		change = c
	case ChangePeriod:
		var c PeriodChange
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		change = c
	default:
		return nil, fmt.Errorf("unknown audit change kind %q", kind)
	}
	return change, nil
}
