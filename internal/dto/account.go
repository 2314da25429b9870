package dto

import (
	"time"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required,max=32"`
	Name            string             `json:"name" binding:"required,max=255"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentAccountID string             `json:"parentAccountID"` // Optional, empty for a root account
}

// UpdateAccountStatusRequest activates or deactivates an account.
type UpdateAccountStatusRequest struct {
	Status domain.AccountStatus `json:"status" binding:"required,oneof=ACTIVE INACTIVE"`
}

// MoveAccountRequest re-parents an account. An empty parent makes it a root.
type MoveAccountRequest struct {
	ParentAccountID string `json:"parentAccountID"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string               `json:"accountID"`
	Code            string               `json:"code"`
	Name            string               `json:"name"`
	AccountType     domain.AccountType   `json:"accountType"`
	ParentAccountID string               `json:"parentAccountID"` // Empty string for root accounts
	Status          domain.AccountStatus `json:"status"`
	Balance         decimal.Decimal      `json:"balance"`
	CreatedAt       time.Time            `json:"createdAt"`
	CreatedBy       string               `json:"createdBy"`
	LastUpdatedAt   time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy   string               `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		ParentAccountID: acc.ParentAccountID,
		Status:          acc.Status,
		Balance:         acc.Balance,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// AccountNodeResponse is one account in the chart-of-accounts tree.
type AccountNodeResponse struct {
	AccountResponse
	SubtreeBalance decimal.Decimal       `json:"subtreeBalance"`
	Children       []AccountNodeResponse `json:"children"`
}

// ToAccountTreeResponse converts the account tree recursively.
func ToAccountTreeResponse(nodes []domain.AccountNode) []AccountNodeResponse {
	res := make([]AccountNodeResponse, len(nodes))
	for i := range nodes {
		res[i] = AccountNodeResponse{
			AccountResponse: ToAccountResponse(&nodes[i].Account),
			SubtreeBalance:  nodes[i].SubtreeBalance,
			Children:        ToAccountTreeResponse(nodes[i].Children),
		}
	}
	return res
}

// SubtreeBalanceResponse defines the data returned for a subtree balance query.
type SubtreeBalanceResponse struct {
	AccountID      string          `json:"accountID"`
	Balance        decimal.Decimal `json:"balance"`        // Own postings only
	SubtreeBalance decimal.Decimal `json:"subtreeBalance"` // Own plus all descendants
}
