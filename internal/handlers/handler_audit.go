package handlers

import (
	"net/http"

	portssvc "github.com/finpulse/finpulse_ledger/internal/core/ports/services"
	"github.com/finpulse/finpulse_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditReaderSvc) {
	rg.GET("/audit", func(c *gin.Context) {
		listAuditEvents(c, auditService)
	})
}

// listAuditEvents godoc
// @Summary Audit trail
// @Description Lists audit events newest first with typed before/after snapshots
// @Tags audit
// @Produce  json
// @Param   entityID query string false "Only events for this entity"
// @Param   action query string false "Only this action, e.g. journal.reverse"
// @Param   since query string false "Only events on or after this date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Events to skip" default(0)
// @Success 200 {object} dto.ListAuditEventsResponse
// @Security BearerAuth
// @Router /audit [get]
func listAuditEvents(c *gin.Context, auditService portssvc.AuditReaderSvc) {
	var params dto.ListAuditEventsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	events, err := auditService.ListAuditEvents(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list audit events")
		return
	}
	c.JSON(http.StatusOK, dto.ListAuditEventsResponse{Events: events})
}
