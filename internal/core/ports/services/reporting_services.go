package services

import (
	"context"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
)

// ReportingService defines the interface for financial reporting operations
type ReportingService interface {
	// TrialBalance lists every account in its normal column with totals.
	TrialBalance(ctx context.Context) (*domain.TrialBalance, error)

	// ProfitAndLoss summarizes revenue and expense balances.
	ProfitAndLoss(ctx context.Context) (*domain.PAndLReport, error)

	// BalanceSheet summarizes asset, liability and equity balances.
	BalanceSheet(ctx context.Context) (*domain.BalanceSheetReport, error)
}
