package services

import (
	"context"
	"log/slog"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/finpulse/finpulse_ledger/internal/core/ledger"
	portssvc "github.com/finpulse/finpulse_ledger/internal/core/ports/services"
	"github.com/finpulse/finpulse_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

type accountService struct {
	BaseService
	engine *ledger.Engine
	audit  portssvc.AuditRecorderSvc
}

// NewAccountService creates the chart-of-accounts service.
func NewAccountService(engine *ledger.Engine, audit portssvc.AuditRecorderSvc) portssvc.AccountSvcFacade {
	return &accountService{engine: engine, audit: audit}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.engine.CreateAccount(ctx, ledger.NewAccount{
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: req.ParentAccountID,
		CreatedBy:       userID,
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to create account", slog.String("code", req.Code))
		return nil, err
	}

	s.audit.Record(ctx, domain.ActionAccountCreate, account.AccountID, userID,
		domain.AccountChange{After: domain.SnapshotAccount(account)})
	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code),
		slog.String("type", string(account.AccountType)))
	return &account, nil
}

func (s *accountService) SetAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, userID string) (*domain.Account, error) {
	before, after, err := s.engine.SetAccountStatus(ctx, accountID, status, userID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to update account status", slog.String("account_id", accountID))
		return nil, err
	}

	if before.Status != after.Status {
		s.audit.Record(ctx, domain.ActionAccountStatus, accountID, userID, domain.AccountChange{
			Before: domain.SnapshotAccount(before),
			After:  domain.SnapshotAccount(after),
		})
	}
	s.LogInfo(ctx, "Account status updated",
		slog.String("account_id", accountID),
		slog.String("status", string(after.Status)))
	return &after, nil
}

func (s *accountService) MoveAccount(ctx context.Context, accountID, parentID, userID string) (*domain.Account, error) {
	before, err := s.engine.Account(accountID)
	if err != nil {
		return nil, err
	}
	after, err := s.engine.MoveAccount(ctx, accountID, parentID, userID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to move account",
			slog.String("account_id", accountID),
			slog.String("parent_id", parentID))
		return nil, err
	}

	s.audit.Record(ctx, domain.ActionAccountMove, accountID, userID, domain.AccountChange{
		Before: domain.SnapshotAccount(before),
		After:  domain.SnapshotAccount(after),
	})
	s.LogInfo(ctx, "Account moved", slog.String("account_id", accountID), slog.String("parent_id", parentID))
	return &after, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.engine.Account(accountID)
	if err != nil {
		s.LogDebug(ctx, "Account not found", slog.String("account_id", accountID))
		return nil, err
	}
	return &account, nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.engine.Accounts(), nil
}

func (s *accountService) GetAccountTree(ctx context.Context) ([]domain.AccountNode, error) {
	return s.engine.ChartOfAccounts(), nil
}

func (s *accountService) SubtreeBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	balance, err := s.engine.SubtreeBalance(accountID)
	if err != nil {
		s.LogDebug(ctx, "Subtree balance for unknown account", slog.String("account_id", accountID))
		return decimal.Zero, err
	}
	return balance, nil
}
