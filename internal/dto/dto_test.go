package dto

import (
	"testing"
	"time"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	d, err = ParseDate("2025-03-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("31/03/2025")
	assert.Error(t, err)
}

func TestNewValidateJournalResponse(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: "a", Debit: decimal.NewFromInt(40000), Credit: decimal.Zero},
		{AccountID: "b", Debit: decimal.Zero, Credit: decimal.NewFromInt(39999)},
	}
	idx := -1
	res := NewValidateJournalResponse(lines, assert.AnError, "UNBALANCED_ENTRY", &idx)

	assert.False(t, res.Valid)
	assert.Equal(t, "Unbalanced", res.Status)
	assert.True(t, res.Difference.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, "UNBALANCED_ENTRY", res.Kind)

	lines[1].Credit = decimal.NewFromInt(40000)
	res = NewValidateJournalResponse(lines, nil, "", nil)
	assert.True(t, res.Valid)
	assert.Equal(t, "Balanced", res.Status)
	assert.Empty(t, res.Error)

	zero := []domain.JournalLine{{AccountID: "a"}, {AccountID: "b"}}
	res = NewValidateJournalResponse(zero, assert.AnError, "ZERO_AMOUNT_ENTRY", &idx)
	assert.False(t, res.Valid)
	assert.Equal(t, "Unbalanced", res.Status)
}

func TestToAccountTreeResponse(t *testing.T) {
	nodes := []domain.AccountNode{{
		Account:        domain.Account{AccountID: "root", Code: "1000"},
		SubtreeBalance: decimal.NewFromInt(10),
		Children: []domain.AccountNode{{
			Account:        domain.Account{AccountID: "child", Code: "1100", ParentAccountID: "root"},
			SubtreeBalance: decimal.NewFromInt(10),
		}},
	}}

	res := ToAccountTreeResponse(nodes)
	require.Len(t, res, 1)
	assert.Equal(t, "1000", res[0].Code)
	require.Len(t, res[0].Children, 1)
	assert.Equal(t, "root", res[0].Children[0].ParentAccountID)
	assert.Empty(t, res[0].Children[0].Children)
}

func TestToTrialBalanceResponse(t *testing.T) {
	tb := &domain.TrialBalance{
		Rows: []domain.TrialBalanceRow{
			{AccountID: "cash", Code: "1100", AccountType: domain.Asset, Credit: decimal.NewFromInt(40000), Debit: decimal.Zero},
			{AccountID: "rent", Code: "5200", AccountType: domain.Expense, Debit: decimal.NewFromInt(40000), Credit: decimal.Zero},
		},
		TotalDebit:  decimal.NewFromInt(40000),
		TotalCredit: decimal.NewFromInt(40000),
	}

	res := ToTrialBalanceResponse(tb, "PKR")
	assert.True(t, res.Balanced)
	assert.Equal(t, "PKR 40,000.00", res.Totals.DebitDisplay)
	assert.True(t, res.Totals.Difference.IsZero())
	assert.Equal(t, "ASSET", res.Rows[0].AccountType)
}

func TestToPeriodLockResponse(t *testing.T) {
	assert.False(t, ToPeriodLockResponse(domain.PeriodLock{}).Closed)

	lock := domain.PeriodLock{ClosedThrough: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), ClosedBy: "operator"}
	res := ToPeriodLockResponse(lock)
	assert.True(t, res.Closed)
	assert.Equal(t, "2025-01-31", res.ClosedThrough)
}
