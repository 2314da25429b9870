package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finpulse/finpulse_ledger/internal/core/ledger"
	"github.com/finpulse/finpulse_ledger/internal/core/services"
	"github.com/finpulse/finpulse_ledger/internal/dto"
	"github.com/finpulse/finpulse_ledger/internal/middleware"
	"github.com/finpulse/finpulse_ledger/internal/platform/config"
	"github.com/finpulse/finpulse_ledger/internal/repositories/memory"
	"github.com/finpulse/finpulse_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newTestAPI(t *testing.T, limiters Limiters) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := utils.HashPassword("letmein")
	require.NoError(t, err)
	cfg := &config.Config{
		JWTSecret:            "handler-test-secret",
		JWTExpiryDuration:    time.Hour,
		JWTIssuer:            "test",
		OperatorUsername:     "operator",
		OperatorPasswordHash: hash,
		DisplayCurrency:      "PKR",
		IsProduction:         true,
	}

	container := services.NewServiceContainer(cfg, ledger.New(), memory.NewAuditRepository())
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	RegisterRoutes(r, cfg, container, limiters)

	token, _, err := utils.GenerateJWT("operator", cfg.JWTSecret, time.Hour, cfg.JWTIssuer)
	require.NoError(t, err)
	return &testAPI{t: t, router: r, token: token}
}

func (a *testAPI) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (a *testAPI) createAccount(code, name, typ, parent string) dto.AccountResponse {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/v1/accounts", gin.H{
		"code": code, "name": name, "accountType": typ, "parentAccountID": parent,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.AccountResponse](a.t, w)
}

func lines(pairs ...any) []gin.H {
	out := []gin.H{}
	for i := 0; i < len(pairs); i += 3 {
		out = append(out, gin.H{"accountID": pairs[i], "debit": pairs[i+1], "credit": pairs[i+2]})
	}
	return out
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t, Limiters{})
	w := api.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestAPIRequiresToken(t *testing.T) {
	api := newTestAPI(t, Limiters{})
	api.token = ""
	w := api.do(http.MethodGet, "/api/v1/accounts", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin(t *testing.T) {
	loginLimiter, err := middleware.NewLimiter("2-M", nil, "login_test")
	require.NoError(t, err)
	api := newTestAPI(t, Limiters{Login: loginLimiter})
	api.token = ""

	w := api.do(http.MethodPost, "/api/v1/auth/login", gin.H{"username": "operator", "password": "letmein"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[dto.LoginResponse](t, w)
	assert.NotEmpty(t, res.Token)

	w = api.do(http.MethodPost, "/api/v1/auth/login", gin.H{"username": "operator", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodPost, "/api/v1/auth/login", gin.H{"username": "operator", "password": "letmein"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRentScenario(t *testing.T) {
	api := newTestAPI(t, Limiters{})
	expenses := api.createAccount("5000", "Expenses", "EXPENSE", "")
	rent := api.createAccount("5200", "Rent", "EXPENSE", expenses.AccountID)
	cash := api.createAccount("1100", "Cash and Bank", "ASSET", "")

	w := api.do(http.MethodPost, "/api/v1/journals", gin.H{
		"date":        "2025-03-01",
		"description": "Office Rent for March",
		"reference":   "JV-2025-001",
		"lines":       lines(rent.AccountID, "40000", "0", cash.AccountID, "0", "40000"),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	entry := decode[dto.JournalResponse](t, w)
	assert.Equal(t, "POSTED", string(entry.Status))
	assert.Equal(t, "2025-03-01", entry.Date)

	w = api.do(http.MethodGet, "/api/v1/accounts/"+expenses.AccountID+"/subtree-balance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sub := decode[dto.SubtreeBalanceResponse](t, w)
	assert.True(t, sub.Balance.IsZero())
	assert.Equal(t, "40000", sub.SubtreeBalance.String())

	w = api.do(http.MethodGet, "/api/v1/reports/trial-balance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tb := decode[dto.TrialBalanceResponse](t, w)
	assert.True(t, tb.Balanced)
	assert.Equal(t, "PKR 40,000.00", tb.Totals.DebitDisplay)

	w = api.do(http.MethodPost, "/api/v1/journals/"+entry.JournalID+"/reverse", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reversal := decode[dto.JournalResponse](t, w)
	require.NotNil(t, reversal.OriginalJournalID)
	assert.Equal(t, entry.JournalID, *reversal.OriginalJournalID)

	w = api.do(http.MethodPost, "/api/v1/journals/"+entry.JournalID+"/reverse", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_REVERSED", decode[dto.ErrorResponse](t, w).Kind)

	w = api.do(http.MethodGet, "/api/v1/audit?entityID="+entry.JournalID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	audit := decode[struct {
		Events []struct {
			Action string `json:"action"`
			Kind   string `json:"kind"`
		} `json:"events"`
	}](t, w)
	require.Len(t, audit.Events, 2)
	assert.Equal(t, "journal.reverse", audit.Events[0].Action)
	assert.Equal(t, "journal", audit.Events[0].Kind)
}

func TestCreateJournal_ValidationErrorCarriesKindAndLine(t *testing.T) {
	api := newTestAPI(t, Limiters{})
	rent := api.createAccount("5200", "Rent", "EXPENSE", "")
	cash := api.createAccount("1100", "Cash", "ASSET", "")

	tests := []struct {
		name      string
		lines     []gin.H
		kind      string
		lineIndex *int
	}{
		{"unbalanced", lines(rent.AccountID, "40000", "0", cash.AccountID, "0", "39999"), "UNBALANCED_ENTRY", nil},
		{"too few lines", lines(rent.AccountID, "1", "0"), "TOO_FEW_LINES", nil},
		{"unknown account", lines(rent.AccountID, "1", "0", "missing", "0", "1"), "UNKNOWN_OR_INACTIVE_ACCOUNT", ptr(1)},
		{"both sides", lines(rent.AccountID, "1", "1", cash.AccountID, "0", "0"), "AMBIGUOUS_LINE", ptr(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(http.MethodPost, "/api/v1/journals", gin.H{"lines": tt.lines})
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			res := decode[dto.ErrorResponse](t, w)
			assert.Equal(t, tt.kind, res.Kind)
			assert.Equal(t, tt.lineIndex, res.LineIndex)
		})
	}
}

func ptr(i int) *int { return &i }

func TestValidateEndpoint(t *testing.T) {
	api := newTestAPI(t, Limiters{})
	rent := api.createAccount("5200", "Rent", "EXPENSE", "")
	cash := api.createAccount("1100", "Cash", "ASSET", "")

	w := api.do(http.MethodPost, "/api/v1/journals/validate", gin.H{
		"lines": lines(rent.AccountID, "100", "0", cash.AccountID, "0", "90"),
	})
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[dto.ValidateJournalResponse](t, w)
	assert.False(t, res.Valid)
	assert.Equal(t, "Unbalanced", res.Status)
	assert.Equal(t, "10", res.Difference.String())

	w = api.do(http.MethodPost, "/api/v1/journals/validate", gin.H{
		"lines": lines(rent.AccountID, "100", "0", cash.AccountID, "0", "100"),
	})
	res = decode[dto.ValidateJournalResponse](t, w)
	assert.True(t, res.Valid)
	assert.Equal(t, "Balanced", res.Status)

	w = api.do(http.MethodPost, "/api/v1/journals/validate", gin.H{
		"lines": lines(rent.AccountID, "0", "0", cash.AccountID, "0", "0"),
	})
	require.Equal(t, http.StatusOK, w.Code)
	res = decode[dto.ValidateJournalResponse](t, w)
	assert.False(t, res.Valid)
	assert.Equal(t, "Unbalanced", res.Status)
	assert.Equal(t, "ZERO_AMOUNT_ENTRY", res.Kind)
}

func TestDraftWithUnknownAccount(t *testing.T) {
	api := newTestAPI(t, Limiters{})
	cash := api.createAccount("1100", "Cash", "ASSET", "")

	w := api.do(http.MethodPost, "/api/v1/journals", gin.H{
		"draft": true,
		"lines": lines(cash.AccountID, "10", "0", "no-such-account", "0", "10"),
	})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	res := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, "UNKNOWN_OR_INACTIVE_ACCOUNT", res.Kind)
	assert.Equal(t, ptr(1), res.LineIndex)
}

func TestAccountErrors(t *testing.T) {
	api := newTestAPI(t, Limiters{})
	api.createAccount("1100", "Cash", "ASSET", "")

	w := api.do(http.MethodPost, "/api/v1/accounts", gin.H{"code": "1100", "name": "Again", "accountType": "ASSET"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_CODE", decode[dto.ErrorResponse](t, w).Kind)

	w = api.do(http.MethodPost, "/api/v1/accounts", gin.H{"code": "9000", "name": "Bad", "accountType": "INCOME"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/api/v1/accounts/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ACCOUNT_NOT_FOUND", decode[dto.ErrorResponse](t, w).Kind)
}

func TestAccountStatusAndTree(t *testing.T) {
	api := newTestAPI(t, Limiters{})
	assets := api.createAccount("1000", "Assets", "ASSET", "")
	cash := api.createAccount("1100", "Cash", "ASSET", assets.AccountID)

	w := api.do(http.MethodPatch, "/api/v1/accounts/"+cash.AccountID+"/status", gin.H{"status": "INACTIVE"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "INACTIVE", string(decode[dto.AccountResponse](t, w).Status))

	w = api.do(http.MethodGet, "/api/v1/accounts/tree", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tree := decode[[]dto.AccountNodeResponse](t, w)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, cash.AccountID, tree[0].Children[0].AccountID)

	w = api.do(http.MethodPatch, "/api/v1/accounts/"+assets.AccountID+"/parent", gin.H{"parentAccountID": cash.AccountID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_PARENT", decode[dto.ErrorResponse](t, w).Kind)
}

func TestDraftsTemplatesAndPeriods(t *testing.T) {
	api := newTestAPI(t, Limiters{})
	rent := api.createAccount("5200", "Rent", "EXPENSE", "")
	cash := api.createAccount("1100", "Cash", "ASSET", "")

	w := api.do(http.MethodPost, "/api/v1/journals", gin.H{
		"date": "2025-01-15", "draft": true,
		"lines": lines(rent.AccountID, "10", "0", cash.AccountID, "0", "10"),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	draft := decode[dto.JournalResponse](t, w)
	assert.Equal(t, "DRAFT", string(draft.Status))

	w = api.do(http.MethodPost, "/api/v1/periods/close", gin.H{"through": "2025-01-31"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(http.MethodDelete, "/api/v1/journals/"+draft.JournalID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(http.MethodPost, "/api/v1/periods/close", gin.H{"through": "2025-01-31"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "2025-01-31", decode[dto.PeriodLockResponse](t, w).ClosedThrough)

	w = api.do(http.MethodPost, "/api/v1/templates", gin.H{
		"name": "Monthly Rent", "description": "Office rent",
		"lines": lines(rent.AccountID, "40000", "0", cash.AccountID, "0", "40000"),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tmpl := decode[dto.TemplateResponse](t, w)

	w = api.do(http.MethodPost, "/api/v1/templates/"+tmpl.TemplateID+"/post", gin.H{"date": "2025-01-20"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "PERIOD_CLOSED", decode[dto.ErrorResponse](t, w).Kind)

	w = api.do(http.MethodPost, "/api/v1/templates/"+tmpl.TemplateID+"/post", gin.H{"date": "2025-02-01", "reference": "RENT-FEB"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(http.MethodGet, "/api/v1/journals?status=POSTED&limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[dto.ListJournalsResponse](t, w)
	require.Len(t, list.Journals, 1)
	assert.Equal(t, "RENT-FEB", list.Journals[0].Reference)
	assert.Nil(t, list.NextToken)

	w = api.do(http.MethodGet, "/api/v1/journals?nextToken=garbage", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReports(t *testing.T) {
	api := newTestAPI(t, Limiters{})
	cash := api.createAccount("1100", "Cash", "ASSET", "")
	equity := api.createAccount("3000", "Equity", "EQUITY", "")
	sales := api.createAccount("4000", "Revenue", "REVENUE", "")

	for _, ls := range [][]gin.H{
		lines(cash.AccountID, "1000", "0", equity.AccountID, "0", "1000"),
		lines(cash.AccountID, "250", "0", sales.AccountID, "0", "250"),
	} {
		w := api.do(http.MethodPost, "/api/v1/journals", gin.H{"lines": ls})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := api.do(http.MethodGet, "/api/v1/reports/profit-and-loss", nil)
	require.Equal(t, http.StatusOK, w.Code)
	pl := decode[dto.ProfitAndLossResponse](t, w)
	assert.Equal(t, "250", pl.Summary.NetProfit.String())

	w = api.do(http.MethodGet, "/api/v1/reports/balance-sheet", nil)
	require.Equal(t, http.StatusOK, w.Code)
	bs := decode[dto.BalanceSheetResponse](t, w)
	assert.True(t, bs.Balanced)
	assert.Equal(t, "1250", bs.Summary.TotalAssets.String())
}
