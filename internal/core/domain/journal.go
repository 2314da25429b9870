package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft    JournalStatus = "DRAFT"
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// Valid reports whether s is a known journal status.
func (s JournalStatus) Valid() bool {
	switch s {
	case Draft, Posted, Reversed:
		return true
	}
	return false
}

// JournalLine is a single debit or credit against one account.
type JournalLine struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`  // Non-negative
	Credit    decimal.Decimal `json:"credit"` // Non-negative
	Notes     string          `json:"notes"`
}

// IsDebit reports whether the line carries a debit amount.
func (l JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Amount returns the nonzero side of the line.
func (l JournalLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}

// Swapped returns the line with its debit and credit exchanged.
func (l JournalLine) Swapped() JournalLine {
	l.Debit, l.Credit = l.Credit, l.Debit
	return l
}

// JournalEntry represents a single, balanced financial event composed of multiple lines.
type JournalEntry struct {
	JournalID          string        `json:"journalID"`
	JournalDate        time.Time     `json:"journalDate"`
	Description        string        `json:"description"`
	Reference          string        `json:"reference"` // Human label, not unique
	Lines              []JournalLine `json:"lines"`
	Status             JournalStatus `json:"status"`
	OriginalJournalID  *string       `json:"originalJournalID,omitempty"`  // Set on a reversal entry
	ReversingJournalID *string       `json:"reversingJournalID,omitempty"` // Set on a reversed entry
	PostedBy           string        `json:"postedBy,omitempty"`
	AuditFields
}

// Totals sums the debit and credit columns of lines.
func Totals(lines []JournalLine) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	return debits, credits
}

// Amount returns the economic value of the entry: the sum of its debits.
func (j JournalEntry) Amount() decimal.Decimal {
	debits, _ := Totals(j.Lines)
	return debits
}

// IsReversal reports whether this entry was created by reversing another.
func (j JournalEntry) IsReversal() bool {
	return j.OriginalJournalID != nil
}

// Clone returns a deep copy so callers cannot mutate ledger-owned state.
func (j JournalEntry) Clone() JournalEntry {
	c := j
	c.Lines = append([]JournalLine(nil), j.Lines...)
	if j.OriginalJournalID != nil {
		id := *j.OriginalJournalID
		c.OriginalJournalID = &id
	}
	if j.ReversingJournalID != nil {
		id := *j.ReversingJournalID
		c.ReversingJournalID = &id
	}
	return c
}
