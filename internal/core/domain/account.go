package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountTypes lists every account type in chart order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense}

// Valid reports whether t is one of the five known account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether debits increase accounts of this type.
// Debits increase ASSET and EXPENSE; credits increase the rest.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// AccountStatus is the posting status of an account.
type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
)

// Valid reports whether s is a known account status.
func (s AccountStatus) Valid() bool {
	return s == AccountActive || s == AccountInactive
}

// Account represents a ledger account within the core domain.
type Account struct {
	AccountID       string          `json:"accountID"`       // Primary Key (UUID)
	Code            string          `json:"code"`            // Unique ledger code, e.g. "1100"
	Name            string          `json:"name"`            // Display name
	AccountType     AccountType     `json:"accountType"`     // Fixed at creation
	ParentAccountID string          `json:"parentAccountID"` // Empty for top-level accounts
	Status          AccountStatus   `json:"status"`          // ACTIVE accepts postings
	Balance         decimal.Decimal `json:"balance"`         // Own postings only, normal-side signed
	AuditFields
}

// IsActive reports whether the account accepts new postings.
func (a Account) IsActive() bool {
	return a.Status == AccountActive
}

// IsRoot reports whether the account has no parent.
func (a Account) IsRoot() bool {
	return a.ParentAccountID == ""
}

// AccountNode is one account in the chart-of-accounts tree.
type AccountNode struct {
	Account        Account         `json:"account"`
	SubtreeBalance decimal.Decimal `json:"subtreeBalance"`
	Children       []AccountNode   `json:"children"`
}
