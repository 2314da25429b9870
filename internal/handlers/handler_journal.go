package handlers

import (
	"net/http"

	"github.com/finpulse/finpulse_ledger/internal/core/ledger"
	portssvc "github.com/finpulse/finpulse_ledger/internal/core/ports/services"
	"github.com/finpulse/finpulse_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.POST("/validate", h.validateJournal)
		journals.GET("/:journalID", h.getJournal)
		journals.DELETE("/:journalID", h.discardDraft)
		journals.POST("/:journalID/post", h.postDraft)
		journals.POST("/:journalID/reverse", h.reverseJournal)
	}
}

// createJournal godoc
// @Summary Post a journal entry
// @Description Posts a balanced entry, or stores it as a draft when "draft" is true
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.CreateJournalRequest true "Journal entry"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failure with kind and lineIndex"
// @Failure 409 {object} dto.ErrorResponse "Date falls in a closed period"
// @Security BearerAuth
// @Router /journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.journalService.CreateJournal(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create journal")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(entry))
}

// validateJournal godoc
// @Summary Validate journal lines
// @Description Checks lines without posting and reports the balance status
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   lines body dto.ValidateJournalRequest true "Lines to check"
// @Success 200 {object} dto.ValidateJournalResponse
// @Security BearerAuth
// @Router /journals/validate [post]
func (h *journalHandler) validateJournal(c *gin.Context) {
	var req dto.ValidateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	lines := dto.ToDomainLines(req.Lines)
	err := h.journalService.ValidateJournal(c.Request.Context(), lines)
	var lineIndex *int
	if idx, ok := ledger.LineIndex(err); ok {
		lineIndex = &idx
	}
	if err != nil && ledger.ErrorCode(err) == "" {
		respondError(c, err, "Failed to validate journal")
		return
	}
	c.JSON(http.StatusOK, dto.NewValidateJournalResponse(lines, err, ledger.ErrorCode(err), lineIndex))
}

// listJournals godoc
// @Summary List journal entries
// @Description Lists entries by date with optional filters and token pagination
// @Tags journals
// @Produce  json
// @Param   status query string false "DRAFT, POSTED or REVERSED"
// @Param   accountID query string false "Only entries touching this account"
// @Param   from query string false "From date (YYYY-MM-DD)"
// @Param   to query string false "To date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid filter or token"
// @Security BearerAuth
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	entries, next, err := h.journalService.ListJournals(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list journals")
		return
	}
	c.JSON(http.StatusOK, dto.ToListJournalsResponse(entries, next))
}

// getJournal godoc
// @Summary Get a journal entry
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} dto.ErrorResponse "Journal not found"
// @Security BearerAuth
// @Router /journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	entry, err := h.journalService.GetJournalByID(c.Request.Context(), c.Param("journalID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(entry))
}

// postDraft godoc
// @Summary Post a draft
// @Description Validates and posts a stored draft entry
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failure"
// @Failure 404 {object} dto.ErrorResponse "Journal not found"
// @Failure 409 {object} dto.ErrorResponse "Not a draft or period closed"
// @Security BearerAuth
// @Router /journals/{journalID}/post [post]
func (h *journalHandler) postDraft(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entry, err := h.journalService.PostDraft(c.Request.Context(), c.Param("journalID"), userID)
	if err != nil {
		respondError(c, err, "Failed to post draft")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(entry))
}

// discardDraft godoc
// @Summary Discard a draft
// @Tags journals
// @Param   journalID path string true "Journal ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Journal not found"
// @Failure 409 {object} dto.ErrorResponse "Not a draft"
// @Security BearerAuth
// @Router /journals/{journalID} [delete]
func (h *journalHandler) discardDraft(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.journalService.DiscardDraft(c.Request.Context(), c.Param("journalID"), userID); err != nil {
		respondError(c, err, "Failed to discard draft")
		return
	}
	c.Status(http.StatusNoContent)
}

// reverseJournal godoc
// @Summary Reverse a journal entry
// @Description Posts the mirror image of a posted entry and marks the original reversed
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 201 {object} dto.JournalResponse
// @Failure 404 {object} dto.ErrorResponse "Journal not found"
// @Failure 409 {object} dto.ErrorResponse "Already reversed or invalid state"
// @Security BearerAuth
// @Router /journals/{journalID}/reverse [post]
func (h *journalHandler) reverseJournal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	reversal, err := h.journalService.ReverseJournal(c.Request.Context(), c.Param("journalID"), userID)
	if err != nil {
		respondError(c, err, "Failed to reverse journal")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(reversal))
}
