package dto

import (
	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/finpulse/finpulse_ledger/internal/utils"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	Currency string                    `json:"currency,omitempty"`
	Rows     []TrialBalanceRowResponse `json:"rows"`
	Totals   struct {
		Debit         decimal.Decimal `json:"debit"`
		Credit        decimal.Decimal `json:"credit"`
		Difference    decimal.Decimal `json:"difference"`
		DebitDisplay  string          `json:"debitDisplay"`
		CreditDisplay string          `json:"creditDisplay"`
	} `json:"totals"`
	Balanced bool `json:"balanced"`
}

// AccountAmountResponse represents an account with its amount in a financial report
type AccountAmountResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// ProfitAndLossResponse represents the profit and loss report response
type ProfitAndLossResponse struct {
	Currency string                  `json:"currency,omitempty"`
	Revenue  []AccountAmountResponse `json:"revenue"`
	Expenses []AccountAmountResponse `json:"expenses"`
	Summary  struct {
		TotalRevenue  decimal.Decimal `json:"totalRevenue"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetProfit     decimal.Decimal `json:"netProfit"`
		Display       string          `json:"netProfitDisplay"`
	} `json:"summary"`
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	Currency    string                  `json:"currency,omitempty"`
	Assets      []AccountAmountResponse `json:"assets"`
	Liabilities []AccountAmountResponse `json:"liabilities"`
	Equity      []AccountAmountResponse `json:"equity"`
	Summary     struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
		RetainedEarnings decimal.Decimal `json:"retainedEarnings"`
	} `json:"summary"`
	Balanced bool `json:"balanced"`
}

// ToTrialBalanceResponse converts a domain trial balance to a DTO response
func ToTrialBalanceResponse(tb *domain.TrialBalance, currency string) TrialBalanceResponse {
	response := TrialBalanceResponse{
		Currency: currency,
		Rows:     make([]TrialBalanceRowResponse, len(tb.Rows)),
		Balanced: tb.IsBalanced(),
	}
	for i, row := range tb.Rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			Code:        row.Code,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
		}
	}
	response.Totals.Debit = tb.TotalDebit
	response.Totals.Credit = tb.TotalCredit
	response.Totals.Difference = tb.Difference()
	response.Totals.DebitDisplay = utils.FormatAmount(currency, tb.TotalDebit)
	response.Totals.CreditDisplay = utils.FormatAmount(currency, tb.TotalCredit)
	return response
}

func toAccountAmounts(items []domain.AccountAmount) []AccountAmountResponse {
	res := make([]AccountAmountResponse, len(items))
	for i, item := range items {
		res[i] = AccountAmountResponse{
			AccountID: item.AccountID,
			Code:      item.Code,
			Name:      item.Name,
			Amount:    item.NetAmount,
		}
	}
	return res
}

// ToProfitAndLossResponse converts a domain P&L report to a DTO response
func ToProfitAndLossResponse(report *domain.PAndLReport, currency string) ProfitAndLossResponse {
	response := ProfitAndLossResponse{
		Currency: currency,
		Revenue:  toAccountAmounts(report.Revenue),
		Expenses: toAccountAmounts(report.Expenses),
	}
	response.Summary.TotalRevenue = report.TotalRevenue
	response.Summary.TotalExpenses = report.TotalExpenses
	response.Summary.NetProfit = report.NetProfit
	response.Summary.Display = utils.FormatAmount(currency, report.NetProfit)
	return response
}

// ToBalanceSheetResponse converts a domain balance sheet to a DTO response
func ToBalanceSheetResponse(report *domain.BalanceSheetReport, currency string) BalanceSheetResponse {
	response := BalanceSheetResponse{
		Currency:    currency,
		Assets:      toAccountAmounts(report.Assets),
		Liabilities: toAccountAmounts(report.Liabilities),
		Equity:      toAccountAmounts(report.Equity),
		Balanced:    report.IsBalanced(),
	}
	response.Summary.TotalAssets = report.TotalAssets
	response.Summary.TotalLiabilities = report.TotalLiabilities
	response.Summary.TotalEquity = report.TotalEquity
	response.Summary.RetainedEarnings = report.RetainedEarnings
	return response
}
