package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finpulse/finpulse_ledger/internal/apperrors"
	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/finpulse/finpulse_ledger/internal/core/ledger"
	portsrepo "github.com/finpulse/finpulse_ledger/internal/core/ports/repositories"
	portssvc "github.com/finpulse/finpulse_ledger/internal/core/ports/services"
	"github.com/finpulse/finpulse_ledger/internal/core/services"
	"github.com/finpulse/finpulse_ledger/internal/dto"
	"github.com/finpulse/finpulse_ledger/internal/platform/config"
	"github.com/finpulse/finpulse_ledger/internal/repositories/memory"
	"github.com/finpulse/finpulse_ledger/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock AuditRecorder ---
type MockAuditRecorder struct {
	mock.Mock
}

var _ portssvc.AuditRecorderSvc = (*MockAuditRecorder)(nil)

func (m *MockAuditRecorder) Record(ctx context.Context, action domain.AuditAction, entityID, actor string, change domain.AuditChange) {
	m.Called(ctx, action, entityID, actor, change)
}

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditRepository = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockAuditRepository) ListAuditEvents(ctx context.Context, filter portsrepo.AuditFilter) ([]domain.AuditEvent, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEvent), args.Error(1)
}

type LedgerServicesTestSuite struct {
	suite.Suite
	engine   *ledger.Engine
	recorder *MockAuditRecorder
	accounts portssvc.AccountSvcFacade
	journals portssvc.JournalSvcFacade
	tmpls    portssvc.TemplateSvcFacade
	periods  portssvc.PeriodSvcFacade
	reports  portssvc.ReportingService
	userID   string

	cash, rent, capital, sales *domain.Account
}

func TestLedgerServicesTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServicesTestSuite))
}

func (s *LedgerServicesTestSuite) SetupTest() {
	s.engine = ledger.New(ledger.WithClock(func() time.Time {
		return time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)
	}))
	s.recorder = new(MockAuditRecorder)
	s.accounts = services.NewAccountService(s.engine, s.recorder)
	s.journals = services.NewJournalService(s.engine, s.recorder)
	s.tmpls = services.NewTemplateService(s.engine, s.recorder)
	s.periods = services.NewPeriodService(s.engine, s.recorder)
	s.reports = services.NewReportingService(s.engine)
	s.userID = "operator"

	s.recorder.On("Record", mock.Anything, domain.ActionAccountCreate, mock.Anything, s.userID, mock.Anything).Times(4)
	s.cash = s.createAccount("1100", "Cash and Bank", domain.Asset)
	s.rent = s.createAccount("5200", "Rent", domain.Expense)
	s.capital = s.createAccount("3000", "Equity", domain.Equity)
	s.sales = s.createAccount("4000", "Revenue", domain.Revenue)
}

func (s *LedgerServicesTestSuite) TearDownTest() {
	s.recorder.AssertExpectations(s.T())
}

func (s *LedgerServicesTestSuite) createAccount(code, name string, typ domain.AccountType) *domain.Account {
	acc, err := s.accounts.CreateAccount(context.Background(), dto.CreateAccountRequest{
		Code: code, Name: name, AccountType: typ,
	}, s.userID)
	s.Require().NoError(err)
	return acc
}

func line(accountID string, debit, credit int64) dto.JournalLineRequest {
	return dto.JournalLineRequest{
		AccountID: accountID,
		Debit:     decimal.NewFromInt(debit),
		Credit:    decimal.NewFromInt(credit),
	}
}

func (s *LedgerServicesTestSuite) post(req dto.CreateJournalRequest) *domain.JournalEntry {
	s.recorder.On("Record", mock.Anything, domain.ActionJournalPost, mock.Anything, s.userID, mock.AnythingOfType("domain.JournalChange")).Once()
	entry, err := s.journals.CreateJournal(context.Background(), req, s.userID)
	s.Require().NoError(err)
	return entry
}

func (s *LedgerServicesTestSuite) TestCreateAccount_DuplicateCodeNotAudited() {
	_, err := s.accounts.CreateAccount(context.Background(), dto.CreateAccountRequest{
		Code: "1100", Name: "Petty Cash", AccountType: domain.Asset,
	}, s.userID)
	s.Require().Error(err)
	s.ErrorIs(err, ledger.ErrDuplicateCode)
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *LedgerServicesTestSuite) TestSetAccountStatus_RecordsBeforeAndAfter() {
	s.recorder.On("Record", mock.Anything, domain.ActionAccountStatus, s.rent.AccountID, s.userID,
		mock.MatchedBy(func(c domain.AccountChange) bool {
			return c.Before.Status == domain.AccountActive && c.After.Status == domain.AccountInactive
		})).Once()

	acc, err := s.accounts.SetAccountStatus(context.Background(), s.rent.AccountID, domain.AccountInactive, s.userID)
	s.Require().NoError(err)
	s.Equal(domain.AccountInactive, acc.Status)

	// Unchanged status records nothing.
	_, err = s.accounts.SetAccountStatus(context.Background(), s.rent.AccountID, domain.AccountInactive, s.userID)
	s.Require().NoError(err)
}

func (s *LedgerServicesTestSuite) TestMoveAccount() {
	s.recorder.On("Record", mock.Anything, domain.ActionAccountMove, s.rent.AccountID, s.userID, mock.Anything).Once()
	s.recorder.On("Record", mock.Anything, domain.ActionAccountCreate, mock.Anything, s.userID, mock.Anything).Once()
	expenses := s.createAccount("5000", "Expenses", domain.Expense)

	moved, err := s.accounts.MoveAccount(context.Background(), s.rent.AccountID, expenses.AccountID, s.userID)
	s.Require().NoError(err)
	s.Equal(expenses.AccountID, moved.ParentAccountID)

	_, err = s.accounts.MoveAccount(context.Background(), expenses.AccountID, s.rent.AccountID, s.userID)
	s.ErrorIs(err, ledger.ErrInvalidParent)
}

func (s *LedgerServicesTestSuite) TestCreateJournal_PostsAndMovesBalances() {
	entry := s.post(dto.CreateJournalRequest{
		Date:        "2025-03-01",
		Description: "Office Rent for March",
		Reference:   "JV-2025-001",
		Lines:       []dto.JournalLineRequest{line(s.rent.AccountID, 40000, 0), line(s.cash.AccountID, 0, 40000)},
	})

	s.Equal(domain.Posted, entry.Status)
	s.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), entry.JournalDate)

	balance, err := s.accounts.SubtreeBalance(context.Background(), s.rent.AccountID)
	s.Require().NoError(err)
	s.True(balance.Equal(decimal.NewFromInt(40000)))
	cash, err := s.accounts.GetAccountByID(context.Background(), s.cash.AccountID)
	s.Require().NoError(err)
	s.True(cash.Balance.Equal(decimal.NewFromInt(-40000)))
}

func (s *LedgerServicesTestSuite) TestCreateJournal_ValidationFailureNotAudited() {
	_, err := s.journals.CreateJournal(context.Background(), dto.CreateJournalRequest{
		Lines: []dto.JournalLineRequest{line(s.rent.AccountID, 40000, 0), line(s.cash.AccountID, 0, 39999)},
	}, s.userID)

	s.Require().Error(err)
	s.Equal("UNBALANCED_ENTRY", ledger.ErrorCode(err))
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerServicesTestSuite) TestCreateJournal_InvalidDate() {
	_, err := s.journals.CreateJournal(context.Background(), dto.CreateJournalRequest{
		Date:  "03/01/2025",
		Lines: []dto.JournalLineRequest{line(s.rent.AccountID, 1, 0), line(s.cash.AccountID, 0, 1)},
	}, s.userID)
	s.ErrorIs(err, ledger.ErrInvalidInput)
}

func (s *LedgerServicesTestSuite) TestValidateJournal() {
	err := s.journals.ValidateJournal(context.Background(), dto.ToDomainLines([]dto.JournalLineRequest{
		line(s.rent.AccountID, 10, 10), line(s.cash.AccountID, 0, 0),
	}))
	idx, ok := ledger.LineIndex(err)
	s.True(ok)
	s.Equal(0, idx)
	s.Equal("AMBIGUOUS_LINE", ledger.ErrorCode(err))

	s.NoError(s.journals.ValidateJournal(context.Background(), dto.ToDomainLines([]dto.JournalLineRequest{
		line(s.rent.AccountID, 10, 0), line(s.cash.AccountID, 0, 10),
	})))
}

func (s *LedgerServicesTestSuite) TestDraftLifecycle() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Draft: true,
		Lines: []dto.JournalLineRequest{line(s.rent.AccountID, 500, 0), line(s.cash.AccountID, 0, 500)},
	}

	s.recorder.On("Record", mock.Anything, domain.ActionJournalDraft, mock.Anything, s.userID, mock.Anything).Twice()
	draft, err := s.journals.CreateJournal(ctx, req, s.userID)
	s.Require().NoError(err)
	s.Equal(domain.Draft, draft.Status)
	rent, _ := s.accounts.GetAccountByID(ctx, s.rent.AccountID)
	s.True(rent.Balance.IsZero())

	s.recorder.On("Record", mock.Anything, domain.ActionJournalPost, draft.JournalID, s.userID,
		mock.MatchedBy(func(c domain.JournalChange) bool {
			return c.Before.Status == domain.Draft && c.After.Status == domain.Posted
		})).Once()
	posted, err := s.journals.PostDraft(ctx, draft.JournalID, s.userID)
	s.Require().NoError(err)
	s.Equal(domain.Posted, posted.Status)

	other, err := s.journals.CreateJournal(ctx, req, s.userID)
	s.Require().NoError(err)
	s.recorder.On("Record", mock.Anything, domain.ActionJournalDiscard, other.JournalID, s.userID, mock.Anything).Once()
	s.Require().NoError(s.journals.DiscardDraft(ctx, other.JournalID, s.userID))

	_, err = s.journals.GetJournalByID(ctx, other.JournalID)
	s.ErrorIs(err, ledger.ErrEntryNotFound)
}

func (s *LedgerServicesTestSuite) TestReverseJournal_RecordsOriginalAndReversal() {
	entry := s.post(dto.CreateJournalRequest{
		Date:      "2025-03-01",
		Reference: "JV-1",
		Lines:     []dto.JournalLineRequest{line(s.rent.AccountID, 40000, 0), line(s.cash.AccountID, 0, 40000)},
	})

	s.recorder.On("Record", mock.Anything, domain.ActionJournalReverse, entry.JournalID, s.userID,
		mock.MatchedBy(func(c domain.JournalChange) bool {
			return c.Before.Status == domain.Posted && c.After.Status == domain.Reversed && c.After.LinkedJournalID != ""
		})).Once()
	s.recorder.On("Record", mock.Anything, domain.ActionJournalPost, mock.Anything, s.userID, mock.Anything).Once()

	reversal, err := s.journals.ReverseJournal(context.Background(), entry.JournalID, s.userID)
	s.Require().NoError(err)
	s.Require().NotNil(reversal.OriginalJournalID)
	s.Equal(entry.JournalID, *reversal.OriginalJournalID)

	_, err = s.journals.ReverseJournal(context.Background(), entry.JournalID, s.userID)
	s.ErrorIs(err, ledger.ErrAlreadyReversed)
	s.ErrorIs(err, apperrors.ErrConflict)

	tb, err := s.reports.TrialBalance(context.Background())
	s.Require().NoError(err)
	s.True(tb.IsBalanced())
	s.True(tb.TotalDebit.IsZero())
}

func (s *LedgerServicesTestSuite) TestListJournals_Pagination() {
	for i := 1; i <= 3; i++ {
		s.post(dto.CreateJournalRequest{
			Date:  time.Date(2025, 3, i, 0, 0, 0, 0, time.UTC).Format(dto.DateLayout),
			Lines: []dto.JournalLineRequest{line(s.rent.AccountID, int64(i), 0), line(s.cash.AccountID, 0, int64(i))},
		})
	}

	page, next, err := s.journals.ListJournals(context.Background(), dto.ListJournalsParams{Limit: 2})
	s.Require().NoError(err)
	s.Len(page, 2)
	s.Require().NotNil(next)
	s.Equal("2025-03-01", page[0].JournalDate.Format(dto.DateLayout))

	page, next, err = s.journals.ListJournals(context.Background(), dto.ListJournalsParams{Limit: 2, NextToken: *next})
	s.Require().NoError(err)
	s.Len(page, 1)
	s.Nil(next)

	page, _, err = s.journals.ListJournals(context.Background(), dto.ListJournalsParams{From: "2025-03-02", To: "2025-03-02"})
	s.Require().NoError(err)
	s.Len(page, 1)

	_, _, err = s.journals.ListJournals(context.Background(), dto.ListJournalsParams{NextToken: "!!"})
	s.ErrorIs(err, ledger.ErrInvalidInput)
}

func (s *LedgerServicesTestSuite) TestTemplates() {
	ctx := context.Background()
	s.recorder.On("Record", mock.Anything, domain.ActionTemplateCreate, mock.Anything, s.userID,
		domain.TemplateChange{Name: "Monthly Rent", LineCount: 2}).Once()

	tmpl, err := s.tmpls.CreateTemplate(ctx, dto.CreateTemplateRequest{
		Name:        "Monthly Rent",
		Description: "Office rent",
		Lines:       []dto.JournalLineRequest{line(s.rent.AccountID, 40000, 0), line(s.cash.AccountID, 0, 40000)},
	}, s.userID)
	s.Require().NoError(err)

	_, err = s.tmpls.CreateTemplate(ctx, dto.CreateTemplateRequest{
		Name:  "monthly rent",
		Lines: []dto.JournalLineRequest{line(s.rent.AccountID, 1, 0), line(s.cash.AccountID, 0, 1)},
	}, s.userID)
	s.ErrorIs(err, ledger.ErrDuplicateTemplate)

	s.recorder.On("Record", mock.Anything, domain.ActionJournalPost, mock.Anything, s.userID, mock.Anything).Once()
	entry, err := s.tmpls.PostTemplate(ctx, tmpl.TemplateID, dto.PostTemplateRequest{Date: "2025-04-01", Reference: "RENT-APR"}, s.userID)
	s.Require().NoError(err)
	s.Equal("Office rent", entry.Description)
	s.True(entry.Amount().Equal(decimal.NewFromInt(40000)))

	list, err := s.tmpls.ListTemplates(ctx)
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *LedgerServicesTestSuite) TestClosePeriod() {
	ctx := context.Background()
	s.recorder.On("Record", mock.Anything, domain.ActionPeriodClose, "period", s.userID,
		mock.MatchedBy(func(c domain.PeriodChange) bool { return c.Before == nil })).Once()

	lock, err := s.periods.ClosePeriod(ctx, dto.ClosePeriodRequest{Through: "2025-02-28"}, s.userID)
	s.Require().NoError(err)
	s.Equal("2025-02-28", lock.ClosedThrough.Format(dto.DateLayout))

	_, err = s.journals.CreateJournal(ctx, dto.CreateJournalRequest{
		Date:  "2025-02-10",
		Lines: []dto.JournalLineRequest{line(s.rent.AccountID, 1, 0), line(s.cash.AccountID, 0, 1)},
	}, s.userID)
	s.ErrorIs(err, ledger.ErrPeriodClosed)

	current, err := s.periods.GetPeriodLock(ctx)
	s.Require().NoError(err)
	s.Equal(lock.ClosedThrough, current.ClosedThrough)
}

func (s *LedgerServicesTestSuite) TestReports() {
	ctx := context.Background()
	s.post(dto.CreateJournalRequest{Lines: []dto.JournalLineRequest{line(s.cash.AccountID, 100000, 0), line(s.capital.AccountID, 0, 100000)}})
	s.post(dto.CreateJournalRequest{Lines: []dto.JournalLineRequest{line(s.cash.AccountID, 25000, 0), line(s.sales.AccountID, 0, 25000)}})
	s.post(dto.CreateJournalRequest{Lines: []dto.JournalLineRequest{line(s.rent.AccountID, 40000, 0), line(s.cash.AccountID, 0, 40000)}})

	pl, err := s.reports.ProfitAndLoss(ctx)
	s.Require().NoError(err)
	s.True(pl.TotalRevenue.Equal(decimal.NewFromInt(25000)))
	s.True(pl.TotalExpenses.Equal(decimal.NewFromInt(40000)))
	s.True(pl.NetProfit.Equal(decimal.NewFromInt(-15000)))

	bs, err := s.reports.BalanceSheet(ctx)
	s.Require().NoError(err)
	s.True(bs.TotalAssets.Equal(decimal.NewFromInt(85000)))
	s.True(bs.TotalEquity.Equal(decimal.NewFromInt(100000)))
	s.True(bs.RetainedEarnings.Equal(decimal.NewFromInt(-15000)))
	s.True(bs.IsBalanced())
	s.Empty(bs.Liabilities)
}

func TestAuditService_RecordAndList(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := services.NewAuditService(memory.NewAuditRepository(), services.WithAuditClock(func() time.Time { return at }))
	ctx := context.Background()

	svc.Record(ctx, domain.ActionAccountCreate, "acc-1", "operator", domain.AccountChange{})
	svc.Record(ctx, domain.ActionJournalPost, "j-1", "operator", domain.JournalChange{})

	events, err := svc.ListAuditEvents(ctx, dto.ListAuditEventsParams{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "j-1", events[0].EntityID)
	assert.Equal(t, at, events[0].At)
	assert.NotEmpty(t, events[0].EventID)

	events, err = svc.ListAuditEvents(ctx, dto.ListAuditEventsParams{EntityID: "acc-1"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.ChangeAccount, events[0].Change.Kind())

	_, err = svc.ListAuditEvents(ctx, dto.ListAuditEventsParams{Since: "yesterday"})
	assert.ErrorIs(t, err, ledger.ErrInvalidInput)
}

func TestAuditService_RepositoryFailures(t *testing.T) {
	repo := new(MockAuditRepository)
	svc := services.NewAuditService(repo)
	ctx := context.Background()

	repo.On("SaveAuditEvent", ctx, mock.AnythingOfType("domain.AuditEvent")).Return(errors.New("disk full")).Once()
	assert.NotPanics(t, func() {
		svc.Record(ctx, domain.ActionPeriodClose, "period", "operator", domain.PeriodChange{})
	})

	repo.On("ListAuditEvents", ctx, portsrepo.AuditFilter{Limit: 10}).Return(nil, errors.New("timeout")).Once()
	_, err := svc.ListAuditEvents(ctx, dto.ListAuditEventsParams{Limit: 10})
	assert.Error(t, err)
	repo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := utils.HashPassword("correct horse")
	require.NoError(t, err)
	cfg := &config.Config{
		JWTSecret:            "secret",
		JWTExpiryDuration:    time.Hour,
		JWTIssuer:            "test",
		OperatorUsername:     "operator",
		OperatorPasswordHash: hash,
	}
	svc := services.NewAuthService(cfg)
	ctx := context.Background()

	token, expiresAt, err := svc.Login(ctx, "operator", "correct horse")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))
	claims, err := utils.ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Subject)

	_, _, err = svc.Login(ctx, "operator", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	_, _, err = svc.Login(ctx, "admin", "correct horse")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	cfg.OperatorPasswordHash = ""
	_, _, err = services.NewAuthService(cfg).Login(ctx, "operator", "correct horse")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
