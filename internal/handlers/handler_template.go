package handlers

import (
	"net/http"

	portssvc "github.com/finpulse/finpulse_ledger/internal/core/ports/services"
	"github.com/finpulse/finpulse_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// templateHandler handles recurring templates and the period lock.
type templateHandler struct {
	templateService portssvc.TemplateSvcFacade
	periodService   portssvc.PeriodSvcFacade
}

func registerTemplateRoutes(rg *gin.RouterGroup, templateService portssvc.TemplateSvcFacade, periodService portssvc.PeriodSvcFacade) {
	h := &templateHandler{templateService: templateService, periodService: periodService}

	templates := rg.Group("/templates")
	{
		templates.POST("", h.createTemplate)
		templates.GET("", h.listTemplates)
		templates.GET("/:templateID", h.getTemplate)
		templates.POST("/:templateID/post", h.postTemplate)
	}

	periods := rg.Group("/periods")
	{
		periods.GET("/close", h.getPeriodLock)
		periods.POST("/close", h.closePeriod)
	}
}

// createTemplate godoc
// @Summary Create a recurring template
// @Tags templates
// @Accept  json
// @Produce  json
// @Param   template body dto.CreateTemplateRequest true "Template"
// @Success 201 {object} dto.TemplateResponse
// @Failure 400 {object} dto.ErrorResponse "Lines fail validation"
// @Failure 409 {object} dto.ErrorResponse "Duplicate template name"
// @Security BearerAuth
// @Router /templates [post]
func (h *templateHandler) createTemplate(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	tmpl, err := h.templateService.CreateTemplate(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create template")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTemplateResponse(tmpl))
}

// listTemplates godoc
// @Summary List recurring templates
// @Tags templates
// @Produce  json
// @Success 200 {array} dto.TemplateResponse
// @Security BearerAuth
// @Router /templates [get]
func (h *templateHandler) listTemplates(c *gin.Context) {
	templates, err := h.templateService.ListTemplates(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list templates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTemplateResponse(templates))
}

// getTemplate godoc
// @Summary Get a recurring template
// @Tags templates
// @Produce  json
// @Param   templateID path string true "Template ID"
// @Success 200 {object} dto.TemplateResponse
// @Failure 404 {object} dto.ErrorResponse "Template not found"
// @Security BearerAuth
// @Router /templates/{templateID} [get]
func (h *templateHandler) getTemplate(c *gin.Context) {
	tmpl, err := h.templateService.GetTemplateByID(c.Request.Context(), c.Param("templateID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve template")
		return
	}
	c.JSON(http.StatusOK, dto.ToTemplateResponse(tmpl))
}

// postTemplate godoc
// @Summary Post a recurring template
// @Tags templates
// @Accept  json
// @Produce  json
// @Param   templateID path string true "Template ID"
// @Param   posting body dto.PostTemplateRequest true "Date and reference"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} dto.ErrorResponse "Lines no longer valid"
// @Failure 404 {object} dto.ErrorResponse "Template not found"
// @Failure 409 {object} dto.ErrorResponse "Date falls in a closed period"
// @Security BearerAuth
// @Router /templates/{templateID}/post [post]
func (h *templateHandler) postTemplate(c *gin.Context) {
	var req dto.PostTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.templateService.PostTemplate(c.Request.Context(), c.Param("templateID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to post template")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(entry))
}

// getPeriodLock godoc
// @Summary Current period lock
// @Tags periods
// @Produce  json
// @Success 200 {object} dto.PeriodLockResponse
// @Security BearerAuth
// @Router /periods/close [get]
func (h *templateHandler) getPeriodLock(c *gin.Context) {
	lock, err := h.periodService.GetPeriodLock(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to read period lock")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodLockResponse(*lock))
}

// closePeriod godoc
// @Summary Close the books through a date
// @Description Postings dated on or before the date are rejected afterwards
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   period body dto.ClosePeriodRequest true "Closing date"
// @Success 200 {object} dto.PeriodLockResponse
// @Failure 409 {object} dto.ErrorResponse "Lock would move backwards or drafts remain"
// @Security BearerAuth
// @Router /periods/close [post]
func (h *templateHandler) closePeriod(c *gin.Context) {
	var req dto.ClosePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	lock, err := h.periodService.ClosePeriod(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to close period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodLockResponse(*lock))
}
