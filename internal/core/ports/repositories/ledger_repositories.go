package repositories

import (
	"context"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountStore defines write operations for account data.
type AccountStore interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountStatus persists a status change.
	UpdateAccountStatus(ctx context.Context, account domain.Account) error

	// UpdateAccountParent persists a move within the chart of accounts.
	UpdateAccountParent(ctx context.Context, account domain.Account) error
}

// JournalStore defines write operations for journal entries. Every method that
// carries balanceChanges must apply the entry and the balance updates in one
// database transaction.
type JournalStore interface {
	// SaveJournal persists a posted journal with its lines and applies balanceChanges.
	SaveJournal(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error

	// SaveDraft persists a draft journal. Balances are not touched.
	SaveDraft(ctx context.Context, entry domain.JournalEntry) error

	// DeleteDraft removes a draft journal.
	DeleteDraft(ctx context.Context, journalID string) error

	// PostDraft marks a stored draft as posted, replacing its lines, and applies balanceChanges.
	PostDraft(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error

	// ReverseJournal inserts the reversal, marks the original REVERSED and applies balanceChanges.
	ReverseJournal(ctx context.Context, original, reversal domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error
}

// TemplateStore persists recurring templates.
type TemplateStore interface {
	SaveTemplate(ctx context.Context, template domain.RecurringTemplate) error
}

// PeriodStore persists the period lock.
type PeriodStore interface {
	SavePeriodLock(ctx context.Context, lock domain.PeriodLock) error
}

// LedgerSnapshot is everything needed to rebuild a ledger in memory.
type LedgerSnapshot struct {
	Accounts   []domain.Account
	Journals   []domain.JournalEntry
	Templates  []domain.RecurringTemplate
	PeriodLock domain.PeriodLock
}

// LedgerLoader reads back the persisted ledger.
type LedgerLoader interface {
	LoadLedger(ctx context.Context) (*LedgerSnapshot, error)
}

// LedgerStore combines every persistence operation the ledger engine needs.
type LedgerStore interface {
	AccountStore
	JournalStore
	TemplateStore
	PeriodStore
	LedgerLoader
}
