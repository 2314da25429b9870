package handlers

import (
	"net/http"

	portssvc "github.com/finpulse/finpulse_ledger/internal/core/ports/services"
	"github.com/finpulse/finpulse_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles financial report requests.
type reportingHandler struct {
	reportingService portssvc.ReportingService
	currency         string
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, currency string) {
	h := &reportingHandler{reportingService: reportingService, currency: currency}

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
		reports.GET("/balance-sheet", h.getBalanceSheet)
	}
}

// getTrialBalance godoc
// @Summary Trial balance
// @Description Every account in its normal column with debit and credit totals
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.TrialBalanceResponse
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	tb, err := h.reportingService.TrialBalance(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to generate trial balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb, h.currency))
}

// getProfitAndLoss godoc
// @Summary Profit and loss
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.ProfitAndLossResponse
// @Security BearerAuth
// @Router /reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	report, err := h.reportingService.ProfitAndLoss(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to generate profit and loss report")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report, h.currency))
}

// getBalanceSheet godoc
// @Summary Balance sheet
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.BalanceSheetResponse
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	report, err := h.reportingService.BalanceSheet(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to generate balance sheet")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report, h.currency))
}
