package accounting_test

import (
	"testing"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/finpulse/finpulse_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateSignedAmount(t *testing.T) {
	amt := decimal.NewFromInt(30000)
	debit := domain.JournalLine{AccountID: "x", Debit: amt}
	credit := domain.JournalLine{AccountID: "x", Credit: amt}

	tests := []struct {
		name        string
		line        domain.JournalLine
		accountType domain.AccountType
		want        decimal.Decimal
	}{
		{"debit asset", debit, domain.Asset, amt},
		{"credit asset", credit, domain.Asset, amt.Neg()},
		{"debit expense", debit, domain.Expense, amt},
		{"credit expense", credit, domain.Expense, amt.Neg()},
		{"debit liability", debit, domain.Liability, amt.Neg()},
		{"credit liability", credit, domain.Liability, amt},
		{"debit equity", debit, domain.Equity, amt.Neg()},
		{"credit revenue", credit, domain.Revenue, amt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.CalculateSignedAmount(tt.line, tt.accountType)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}

	_, err := accounting.CalculateSignedAmount(debit, domain.AccountType("INCOME"))
	assert.Error(t, err)
}

func TestBalanceChanges_NetsPerAccount(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: "cash", Debit: decimal.NewFromInt(100)},
		{AccountID: "cash", Credit: decimal.NewFromInt(40)},
		{AccountID: "sales", Credit: decimal.NewFromInt(60)},
	}
	types := map[string]domain.AccountType{"cash": domain.Asset, "sales": domain.Revenue}

	changes, err := accounting.BalanceChanges(lines, types)
	require.NoError(t, err)
	assert.True(t, changes["cash"].Equal(decimal.NewFromInt(60)))
	assert.True(t, changes["sales"].Equal(decimal.NewFromInt(60)))

	_, err = accounting.BalanceChanges(lines, map[string]domain.AccountType{"cash": domain.Asset})
	assert.Error(t, err)
}

func TestNormalColumns(t *testing.T) {
	d, c := accounting.NormalColumns(decimal.NewFromInt(500), domain.Expense)
	assert.True(t, d.Equal(decimal.NewFromInt(500)))
	assert.True(t, c.IsZero())

	d, c = accounting.NormalColumns(decimal.NewFromInt(-30000), domain.Asset)
	assert.True(t, d.IsZero())
	assert.True(t, c.Equal(decimal.NewFromInt(30000)))

	d, c = accounting.NormalColumns(decimal.NewFromInt(700), domain.Revenue)
	assert.True(t, d.IsZero())
	assert.True(t, c.Equal(decimal.NewFromInt(700)))

	d, c = accounting.NormalColumns(decimal.NewFromInt(-5), domain.Liability)
	assert.True(t, d.Equal(decimal.NewFromInt(5)))
	assert.True(t, c.IsZero())
}
