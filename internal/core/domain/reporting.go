package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance lists every account in its normal column with column totals.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// IsBalanced reports whether the debit and credit columns agree.
func (tb TrialBalance) IsBalanced() bool {
	return tb.TotalDebit.Equal(tb.TotalCredit)
}

// Difference is TotalDebit minus TotalCredit.
func (tb TrialBalance) Difference() decimal.Decimal {
	return tb.TotalDebit.Sub(tb.TotalCredit)
}

// AccountAmount represents an account with its net amount for financial reports
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// PAndLReport represents a profit and loss report
type PAndLReport struct {
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"` // Total revenue minus total expenses
}

// BalanceSheetReport represents a balance sheet report
type BalanceSheetReport struct {
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	RetainedEarnings decimal.Decimal `json:"retainedEarnings"` // Current-period profit not yet closed to equity
}

// IsBalanced reports whether assets equal liabilities plus equity (including retained earnings).
func (r BalanceSheetReport) IsBalanced() bool {
	return r.TotalAssets.Equal(r.TotalLiabilities.Add(r.TotalEquity).Add(r.RetainedEarnings))
}
