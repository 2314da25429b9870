package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceMismatch is an account whose stored balance disagreed with the
// balance recomputed from its postings during Load.
type BalanceMismatch struct {
	AccountID  string
	Code       string
	Stored     decimal.Decimal
	Recomputed decimal.Decimal
}

// Load replaces the engine state with the ledger held by the configured
// store. Balances are recomputed from posted and reversed entries; any
// disagreement with the stored balance is returned and the recomputed value
// wins.
func (e *Engine) Load(ctx context.Context) ([]BalanceMismatch, error) {
	if e.store == nil {
		return nil, errors.New("ledger: load requires a store")
	}
	snapshot, err := e.store.LoadLedger(ctx)
	if err != nil {
		return nil, storeError("load ledger", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.reset()
	stored := make(map[string]decimal.Decimal, len(snapshot.Accounts))
	accounts := append([]domain.Account(nil), snapshot.Accounts...)
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	for _, acc := range accounts {
		stored[acc.AccountID] = acc.Balance
		acc.Balance = decimal.Zero
		e.addAccountLocked(acc)
	}
	for _, acc := range accounts {
		if acc.ParentAccountID == "" {
			continue
		}
		if _, ok := e.accounts[acc.ParentAccountID]; !ok {
			e.reset()
			return nil, fmt.Errorf("%w: account %s has unknown parent %s", ErrInvalidParent, acc.Code, acc.ParentAccountID)
		}
	}
	for _, acc := range accounts {
		if acc.ParentAccountID != "" && e.isDescendantLocked(acc.ParentAccountID, acc.AccountID) {
			e.reset()
			return nil, fmt.Errorf("%w: account %s is part of a parent cycle", ErrInvalidParent, acc.Code)
		}
	}

	for _, j := range snapshot.Journals {
		if j.Status != domain.Draft {
			changes, err := e.balanceChangesLocked(j.Lines)
			if err != nil {
				e.reset()
				return nil, fmt.Errorf("ledger: journal %s: %w", j.JournalID, err)
			}
			e.applyLocked(changes)
		}
		e.addJournalLocked(j)
	}
	for _, t := range snapshot.Templates {
		e.templates[t.TemplateID] = cloneTemplate(t)
	}
	e.lock = snapshot.PeriodLock

	var mismatches []BalanceMismatch
	for _, acc := range e.sortedAccountsLocked() {
		if s := stored[acc.AccountID]; !s.Equal(acc.Balance) {
			mismatches = append(mismatches, BalanceMismatch{
				AccountID:  acc.AccountID,
				Code:       acc.Code,
				Stored:     s,
				Recomputed: acc.Balance,
			})
		}
	}
	return mismatches, nil
}
