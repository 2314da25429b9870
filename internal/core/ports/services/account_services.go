package services

import (
	"context"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/finpulse/finpulse_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts lists every account ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// GetAccountTree returns the chart of accounts as a tree with subtree balances.
	GetAccountTree(ctx context.Context) ([]domain.AccountNode, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// SetAccountStatus activates or deactivates an account.
	SetAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, userID string) (*domain.Account, error)

	// MoveAccount re-parents an account; an empty parentID makes it a root.
	MoveAccount(ctx context.Context, accountID, parentID, userID string) (*domain.Account, error)
}

// AccountCalculatorSvc defines calculation operations for account data
type AccountCalculatorSvc interface {
	// SubtreeBalance returns the balance of an account and all its descendants.
	SubtreeBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountCalculatorSvc
}
