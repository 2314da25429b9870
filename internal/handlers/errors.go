package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/finpulse/finpulse_ledger/internal/apperrors"
	"github.com/finpulse/finpulse_ledger/internal/core/ledger"
	"github.com/finpulse/finpulse_ledger/internal/dto"
	"github.com/finpulse/finpulse_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// statusFor maps an error class to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// newErrorResponse builds the error body. Internal errors hide their cause
// behind fallback.
func newErrorResponse(err error, status int, fallback string) dto.ErrorResponse {
	res := dto.ErrorResponse{Error: err.Error(), Kind: ledger.ErrorCode(err)}
	if status == http.StatusInternalServerError {
		res.Error = fallback
	}
	if idx, ok := ledger.LineIndex(err); ok {
		res.LineIndex = &idx
	}
	return res
}

// respondError writes err with the status of its class and logs it.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.JSON(status, newErrorResponse(err, status, fallback))
}

// respondBindError reports a malformed request body or query.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
		}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request: " + strings.Join(fields, "; "),
			Kind:  ledger.ErrorCode(ledger.ErrInvalidInput),
		})
		return
	}
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid request format: " + err.Error(),
		Kind:  ledger.ErrorCode(ledger.ErrInvalidInput),
	})
}

// requireUserID returns the authenticated operator or writes a 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
