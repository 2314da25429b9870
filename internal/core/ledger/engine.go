// Package ledger implements the general ledger: a chart of accounts and a
// double-entry journal whose postings are the only way account balances
// change.
//
// An Engine is safe for concurrent use. Writers are serialized under a single
// lock across validate-then-apply, so readers never observe a half-applied
// entry. When a store is configured the store write happens before the
// in-memory apply; a store failure leaves the engine unchanged.
package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/finpulse/finpulse_ledger/internal/core/ports/repositories"
	"github.com/finpulse/finpulse_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Option configures an Engine.
type Option func(*Engine)

// WithStore persists every write through store.
func WithStore(store repositories.LedgerStore) Option {
	return func(e *Engine) { e.store = store }
}

// WithClock replaces time.Now for audit stamps and default entry dates.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator replaces the uuid generator for account, entry and line ids.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// Engine owns the accounts and journal of one ledger.
type Engine struct {
	mu sync.RWMutex

	accounts map[string]*domain.Account
	byCode   map[string]string
	children map[string][]string

	journals     map[string]*domain.JournalEntry
	journalOrder []string

	templates map[string]*domain.RecurringTemplate

	lock domain.PeriodLock

	store repositories.LedgerStore
	now   func() time.Time
	newID func() string
}

// New creates an empty ledger.
func New(opts ...Option) *Engine {
	e := &Engine{
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	e.reset()
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) reset() {
	e.accounts = make(map[string]*domain.Account)
	e.byCode = make(map[string]string)
	e.children = make(map[string][]string)
	e.journals = make(map[string]*domain.JournalEntry)
	e.journalOrder = nil
	e.templates = make(map[string]*domain.RecurringTemplate)
	e.lock = domain.PeriodLock{}
}

// NewAccount is the input to CreateAccount.
type NewAccount struct {
	Code            string
	Name            string
	AccountType     domain.AccountType
	ParentAccountID string
	CreatedBy       string
}

// CreateAccount adds an account to the chart. The account starts ACTIVE with
// a zero balance.
func (e *Engine) CreateAccount(ctx context.Context, req NewAccount) (domain.Account, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return domain.Account{}, fmt.Errorf("%w: code and name are required", ErrInvalidInput)
	}
	if !req.AccountType.Valid() {
		return domain.Account{}, fmt.Errorf("%w: unknown account type %q", ErrInvalidInput, req.AccountType)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.byCode[code]; exists {
		return domain.Account{}, fmt.Errorf("%w: %s", ErrDuplicateCode, code)
	}
	if req.ParentAccountID != "" {
		if _, ok := e.accounts[req.ParentAccountID]; !ok {
			return domain.Account{}, fmt.Errorf("%w: parent %s does not exist", ErrInvalidParent, req.ParentAccountID)
		}
	}

	account := domain.Account{
		AccountID:       e.newID(),
		Code:            code,
		Name:            name,
		AccountType:     req.AccountType,
		ParentAccountID: req.ParentAccountID,
		Status:          domain.AccountActive,
		Balance:         decimal.Zero,
		AuditFields:     domain.NewAuditFields(req.CreatedBy, e.now().UTC()),
	}
	if e.store != nil {
		if err := e.store.SaveAccount(ctx, account); err != nil {
			return domain.Account{}, storeError("save account", err)
		}
	}
	e.addAccountLocked(account)
	return account, nil
}

func (e *Engine) addAccountLocked(account domain.Account) {
	acc := account
	e.accounts[acc.AccountID] = &acc
	e.byCode[acc.Code] = acc.AccountID
	if acc.ParentAccountID != "" {
		e.children[acc.ParentAccountID] = append(e.children[acc.ParentAccountID], acc.AccountID)
	}
}

// Account returns the account with the given id.
func (e *Engine) Account(accountID string) (domain.Account, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	acc, ok := e.accounts[accountID]
	if !ok {
		return domain.Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	return *acc, nil
}

// AccountByCode returns the account with the given ledger code.
func (e *Engine) AccountByCode(code string) (domain.Account, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	id, ok := e.byCode[code]
	if !ok {
		return domain.Account{}, fmt.Errorf("%w: code %s", ErrAccountNotFound, code)
	}
	return *e.accounts[id], nil
}

// Accounts lists every account ordered by code.
func (e *Engine) Accounts() []domain.Account {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sortedAccountsLocked()
}

func (e *Engine) sortedAccountsLocked() []domain.Account {
	out := make([]domain.Account, 0, len(e.accounts))
	for _, acc := range e.accounts {
		out = append(out, *acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// SetAccountStatus activates or deactivates an account. Deactivated accounts
// keep their balance but reject new postings. It returns the account before
// and after the change.
func (e *Engine) SetAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, actor string) (before, after domain.Account, err error) {
	if !status.Valid() {
		return domain.Account{}, domain.Account{}, fmt.Errorf("%w: unknown account status %q", ErrInvalidInput, status)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	acc, ok := e.accounts[accountID]
	if !ok {
		return domain.Account{}, domain.Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	before = *acc
	after = *acc
	after.Status = status
	after.Touch(actor, e.now().UTC())

	if e.store != nil {
		if err := e.store.UpdateAccountStatus(ctx, after); err != nil {
			return domain.Account{}, domain.Account{}, storeError("update account status", err)
		}
	}
	*acc = after
	return before, after, nil
}

// MoveAccount re-parents an account. An empty parentID makes it a root.
func (e *Engine) MoveAccount(ctx context.Context, accountID, parentID, actor string) (domain.Account, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	acc, ok := e.accounts[accountID]
	if !ok {
		return domain.Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	if parentID != "" {
		if _, ok := e.accounts[parentID]; !ok {
			return domain.Account{}, fmt.Errorf("%w: parent %s does not exist", ErrInvalidParent, parentID)
		}
		if e.isDescendantLocked(parentID, accountID) {
			return domain.Account{}, fmt.Errorf("%w: %s cannot be placed under %s", ErrInvalidParent, accountID, parentID)
		}
	}

	updated := *acc
	updated.ParentAccountID = parentID
	updated.Touch(actor, e.now().UTC())
	if e.store != nil {
		if err := e.store.UpdateAccountParent(ctx, updated); err != nil {
			return domain.Account{}, storeError("move account", err)
		}
	}

	if acc.ParentAccountID != "" {
		e.children[acc.ParentAccountID] = removeID(e.children[acc.ParentAccountID], accountID)
	}
	if parentID != "" {
		e.children[parentID] = append(e.children[parentID], accountID)
	}
	*acc = updated
	return updated, nil
}

// isDescendantLocked reports whether candidate is ancestor itself or lies
// below it in the tree. A parent chain that loops also counts.
func (e *Engine) isDescendantLocked(candidate, ancestor string) bool {
	seen := make(map[string]bool)
	for id := candidate; id != ""; {
		if id == ancestor {
			return true
		}
		if seen[id] {
			return true
		}
		seen[id] = true
		acc, ok := e.accounts[id]
		if !ok {
			return false
		}
		id = acc.ParentAccountID
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// balanceChangesLocked nets the signed effect of lines per account.
func (e *Engine) balanceChangesLocked(lines []domain.JournalLine) (map[string]decimal.Decimal, error) {
	types := make(map[string]domain.AccountType, len(lines))
	for _, l := range lines {
		if acc, ok := e.accounts[l.AccountID]; ok {
			types[l.AccountID] = acc.AccountType
		}
	}
	return accounting.BalanceChanges(lines, types)
}

// applyLocked adds balance changes to accounts. Every id must already have
// been validated; an unknown id is a programming error.
func (e *Engine) applyLocked(changes map[string]decimal.Decimal) {
	for id, delta := range changes {
		acc, ok := e.accounts[id]
		if !ok {
			panic(fmt.Sprintf("ledger: apply to unknown account %s", id))
		}
		acc.Balance = acc.Balance.Add(delta)
	}
}
