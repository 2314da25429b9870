package services

import (
	"context"
	"log/slog"

	"github.com/finpulse/finpulse_ledger/internal/core/ledger"
)

// LoadLedger restores engine state from its store and reports any account
// whose stored balance disagreed with its postings.
func LoadLedger(ctx context.Context, engine *ledger.Engine, logger *slog.Logger) error {
	mismatches, err := engine.Load(ctx)
	if err != nil {
		return err
	}
	for _, m := range mismatches {
		logger.Warn("Stored balance disagreed with postings, using recomputed balance",
			slog.String("account_id", m.AccountID),
			slog.String("code", m.Code),
			slog.String("stored", m.Stored.String()),
			slog.String("recomputed", m.Recomputed.String()))
	}
	tb := engine.TrialBalance()
	logger.Info("Ledger loaded",
		slog.Int("accounts", len(tb.Rows)),
		slog.Int("mismatches", len(mismatches)),
		slog.Bool("balanced", tb.IsBalanced()))
	return nil
}
