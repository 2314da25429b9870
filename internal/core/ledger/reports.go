package ledger

import (
	"fmt"
	"sort"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/finpulse/finpulse_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// TrialBalance lists every account ordered by code with its own balance in
// its normal column. A balance that has gone below zero is shown as a
// positive amount in the opposite column.
func (e *Engine) TrialBalance() domain.TrialBalance {
	e.mu.RLock()
	defer e.mu.RUnlock()

	tb := domain.TrialBalance{
		Rows:        make([]domain.TrialBalanceRow, 0, len(e.accounts)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, acc := range e.sortedAccountsLocked() {
		debit, credit := accounting.NormalColumns(acc.Balance, acc.AccountType)
		tb.Rows = append(tb.Rows, domain.TrialBalanceRow{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			AccountName: acc.Name,
			AccountType: acc.AccountType,
			Debit:       debit,
			Credit:      credit,
		})
		tb.TotalDebit = tb.TotalDebit.Add(debit)
		tb.TotalCredit = tb.TotalCredit.Add(credit)
	}
	return tb
}

// SubtreeBalance is the account's own balance plus the subtree balance of
// each of its children.
func (e *Engine) SubtreeBalance(accountID string) (decimal.Decimal, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if _, ok := e.accounts[accountID]; !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	return e.subtreeLocked(accountID), nil
}

func (e *Engine) subtreeLocked(accountID string) decimal.Decimal {
	total := e.accounts[accountID].Balance
	for _, child := range e.children[accountID] {
		total = total.Add(e.subtreeLocked(child))
	}
	return total
}

// ChartOfAccounts returns the account tree. Roots and siblings are ordered
// by code.
func (e *Engine) ChartOfAccounts() []domain.AccountNode {
	e.mu.RLock()
	defer e.mu.RUnlock()

	roots := make([]string, 0)
	for id, acc := range e.accounts {
		if acc.IsRoot() {
			roots = append(roots, id)
		}
	}
	return e.nodesLocked(roots)
}

func (e *Engine) nodesLocked(ids []string) []domain.AccountNode {
	nodes := make([]domain.AccountNode, 0, len(ids))
	for _, id := range ids {
		acc := *e.accounts[id]
		children := e.nodesLocked(e.children[id])
		subtree := acc.Balance
		for _, c := range children {
			subtree = subtree.Add(c.SubtreeBalance)
		}
		nodes = append(nodes, domain.AccountNode{Account: acc, SubtreeBalance: subtree, Children: children})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Account.Code < nodes[j].Account.Code })
	return nodes
}
