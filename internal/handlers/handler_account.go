package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finpulse/finpulse_ledger/internal/core/ports/services"
	"github.com/finpulse/finpulse_ledger/internal/dto"
	"github.com/finpulse/finpulse_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/tree", h.getAccountTree)
		accounts.GET("/:accountID", h.getAccount)
		accounts.GET("/:accountID/subtree-balance", h.getSubtreeBalance)
		accounts.PATCH("/:accountID/status", h.updateAccountStatus)
		accounts.PATCH("/:accountID/parent", h.moveAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Adds an account to the chart. Codes are unique.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or unknown parent"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Duplicate account code"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists every account ordered by code
// @Tags accounts
// @Produce  json
// @Success 200 {array} dto.AccountResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// getAccountTree godoc
// @Summary Chart of accounts tree
// @Description Returns the account hierarchy with own and subtree balances
// @Tags accounts
// @Produce  json
// @Success 200 {array} dto.AccountNodeResponse
// @Security BearerAuth
// @Router /accounts/tree [get]
func (h *accountHandler) getAccountTree(c *gin.Context) {
	tree, err := h.accountService.GetAccountTree(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to build account tree")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountTreeResponse(tree))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getSubtreeBalance godoc
// @Summary Subtree balance
// @Description Balance of an account plus all of its descendants
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.SubtreeBalanceResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/subtree-balance [get]
func (h *accountHandler) getSubtreeBalance(c *gin.Context) {
	ctx := c.Request.Context()
	accountID := c.Param("accountID")

	account, err := h.accountService.GetAccountByID(ctx, accountID)
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	subtree, err := h.accountService.SubtreeBalance(ctx, accountID)
	if err != nil {
		respondError(c, err, "Failed to compute subtree balance")
		return
	}
	c.JSON(http.StatusOK, dto.SubtreeBalanceResponse{
		AccountID:      accountID,
		Balance:        account.Balance,
		SubtreeBalance: subtree,
	})
}

// updateAccountStatus godoc
// @Summary Activate or deactivate an account
// @Description Inactive accounts keep their balance but reject new postings
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   status body dto.UpdateAccountStatusRequest true "New status"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/status [patch]
func (h *accountHandler) updateAccountStatus(c *gin.Context) {
	var req dto.UpdateAccountStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	accountID := c.Param("accountID")
	account, err := h.accountService.SetAccountStatus(c.Request.Context(), accountID, req.Status, userID)
	if err != nil {
		respondError(c, err, "Failed to update account status")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account status updated",
		slog.String("account_id", accountID), slog.String("status", string(account.Status)))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// moveAccount godoc
// @Summary Re-parent an account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   parent body dto.MoveAccountRequest true "New parent, empty for root"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown parent or cycle"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/parent [patch]
func (h *accountHandler) moveAccount(c *gin.Context) {
	var req dto.MoveAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	account, err := h.accountService.MoveAccount(c.Request.Context(), c.Param("accountID"), req.ParentAccountID, userID)
	if err != nil {
		respondError(c, err, "Failed to move account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
