package handlers

import (
	"net/http"

	portssvc "github.com/finpulse/finpulse_ledger/internal/core/ports/services"
	"github.com/finpulse/finpulse_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// authHandler handles operator login.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(authService portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: authService}
}

// registerAuthRoutes registers the public login route behind its own middleware.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvcFacade, mw ...gin.HandlerFunc) {
	h := newAuthHandler(authService)
	auth := r.Group("/api/v1/auth", mw...)
	auth.POST("/login", h.login)
}

// login godoc
// @Summary Operator login
// @Description Exchanges operator credentials for a bearer token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.LoginRequest true "Operator credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 429 {object} dto.ErrorResponse "Too many attempts"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, expiresAt, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt})
}
