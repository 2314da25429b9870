package services

import (
	"context"
	"log/slog"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/finpulse/finpulse_ledger/internal/core/ledger"
	portssvc "github.com/finpulse/finpulse_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService builds financial statements from the live ledger balances.
type reportingService struct {
	BaseService
	engine *ledger.Engine
}

// NewReportingService creates a new reporting service
func NewReportingService(engine *ledger.Engine) portssvc.ReportingService {
	return &reportingService{engine: engine}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance generates a trial balance report of current balances
func (s *reportingService) TrialBalance(ctx context.Context) (*domain.TrialBalance, error) {
	tb := s.engine.TrialBalance()
	if !tb.IsBalanced() {
		// Postings keep the books balanced, so this indicates corrupted state.
		s.GetLogger(ctx).Error("Trial balance does not balance",
			slog.String("total_debit", tb.TotalDebit.String()),
			slog.String("total_credit", tb.TotalCredit.String()))
	}
	s.LogInfo(ctx, "Trial balance report generated", slog.Int("row_count", len(tb.Rows)))
	return &tb, nil
}

// groupByType splits accounts into per-type amount lists and totals.
func groupByType(accounts []domain.Account) (map[domain.AccountType][]domain.AccountAmount, map[domain.AccountType]decimal.Decimal) {
	items := make(map[domain.AccountType][]domain.AccountAmount, len(domain.AccountTypes))
	totals := make(map[domain.AccountType]decimal.Decimal, len(domain.AccountTypes))
	for _, t := range domain.AccountTypes {
		items[t] = []domain.AccountAmount{}
		totals[t] = decimal.Zero
	}
	for _, acc := range accounts {
		items[acc.AccountType] = append(items[acc.AccountType], domain.AccountAmount{
			AccountID: acc.AccountID,
			Code:      acc.Code,
			Name:      acc.Name,
			NetAmount: acc.Balance,
		})
		totals[acc.AccountType] = totals[acc.AccountType].Add(acc.Balance)
	}
	return items, totals
}

// ProfitAndLoss generates a profit and loss report from revenue and expense balances
func (s *reportingService) ProfitAndLoss(ctx context.Context) (*domain.PAndLReport, error) {
	items, totals := groupByType(s.engine.Accounts())
	report := &domain.PAndLReport{
		Revenue:       items[domain.Revenue],
		Expenses:      items[domain.Expense],
		TotalRevenue:  totals[domain.Revenue],
		TotalExpenses: totals[domain.Expense],
	}
	report.NetProfit = report.TotalRevenue.Sub(report.TotalExpenses)

	s.LogInfo(ctx, "Profit and loss report generated", slog.String("net_profit", report.NetProfit.String()))
	return report, nil
}

// BalanceSheet generates a balance sheet. Revenue less expenses not yet
// closed to equity is reported as retained earnings.
func (s *reportingService) BalanceSheet(ctx context.Context) (*domain.BalanceSheetReport, error) {
	items, totals := groupByType(s.engine.Accounts())
	report := &domain.BalanceSheetReport{
		Assets:           items[domain.Asset],
		Liabilities:      items[domain.Liability],
		Equity:           items[domain.Equity],
		TotalAssets:      totals[domain.Asset],
		TotalLiabilities: totals[domain.Liability],
		TotalEquity:      totals[domain.Equity],
		RetainedEarnings: totals[domain.Revenue].Sub(totals[domain.Expense]),
	}
	if !report.IsBalanced() {
		s.GetLogger(ctx).Error("Balance sheet does not balance",
			slog.String("total_assets", report.TotalAssets.String()))
	}

	s.LogInfo(ctx, "Balance sheet report generated",
		slog.String("total_assets", report.TotalAssets.String()))
	return report, nil
}
