package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Journal is a row of the journals table.
type Journal struct {
	JournalID          string         `db:"journal_id"`
	JournalDate        time.Time      `db:"journal_date"`
	Description        string         `db:"description"`
	Reference          string         `db:"reference"`
	Status             string         `db:"status"`
	OriginalJournalID  sql.NullString `db:"original_journal_id"`
	ReversingJournalID sql.NullString `db:"reversing_journal_id"`
	PostedBy           string         `db:"posted_by"`
	AuditFields
}

// JournalLine is a row of the journal_lines table.
type JournalLine struct {
	LineID    string          `db:"line_id"`
	JournalID string          `db:"journal_id"`
	LineNo    int             `db:"line_no"`
	AccountID string          `db:"account_id"`
	Debit     decimal.Decimal `db:"debit"`
	Credit    decimal.Decimal `db:"credit"`
	Notes     string          `db:"notes"`
}
