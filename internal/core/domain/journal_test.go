package domain_test

import (
	"testing"
	"time"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotals(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: "a", Debit: decimal.NewFromInt(25000)},
		{AccountID: "b", Debit: decimal.NewFromInt(15000)},
		{AccountID: "c", Credit: decimal.NewFromInt(40000)},
	}

	debits, credits := domain.Totals(lines)

	assert.True(t, debits.Equal(decimal.NewFromInt(40000)))
	assert.True(t, credits.Equal(decimal.NewFromInt(40000)))
}

func TestJournalLine_Swapped(t *testing.T) {
	line := domain.JournalLine{AccountID: "cash", Credit: decimal.NewFromInt(30000)}

	swapped := line.Swapped()

	assert.True(t, swapped.IsDebit())
	assert.True(t, swapped.Debit.Equal(decimal.NewFromInt(30000)))
	assert.True(t, swapped.Credit.IsZero())
	assert.False(t, line.IsDebit(), "original line must be untouched")
}

func TestJournalEntry_Clone(t *testing.T) {
	orig := "j-1"
	entry := domain.JournalEntry{
		JournalID:         "j-2",
		Lines:             []domain.JournalLine{{AccountID: "a", Debit: decimal.NewFromInt(1)}},
		OriginalJournalID: &orig,
	}

	c := entry.Clone()
	c.Lines[0].AccountID = "changed"
	*c.OriginalJournalID = "changed"

	assert.Equal(t, "a", entry.Lines[0].AccountID)
	assert.Equal(t, "j-1", *entry.OriginalJournalID)
	assert.True(t, entry.IsReversal())
}

func TestPeriodLock_Covers(t *testing.T) {
	lock := domain.PeriodLock{ClosedThrough: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)}

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"before", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"same day later hour", time.Date(2024, 1, 31, 18, 30, 0, 0, time.UTC), true},
		{"after", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lock.Covers(tt.date))
		})
	}

	assert.False(t, domain.PeriodLock{}.Covers(time.Now()))
}

func TestAccountType_IsDebitNormal(t *testing.T) {
	assert.True(t, domain.Asset.IsDebitNormal())
	assert.True(t, domain.Expense.IsDebitNormal())
	assert.False(t, domain.Liability.IsDebitNormal())
	assert.False(t, domain.Equity.IsDebitNormal())
	assert.False(t, domain.Revenue.IsDebitNormal())
	assert.False(t, domain.AccountType("INCOME").Valid())
}
