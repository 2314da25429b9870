package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/finpulse/finpulse_ledger/internal/apperrors"
	portssvc "github.com/finpulse/finpulse_ledger/internal/core/ports/services"
	"github.com/finpulse/finpulse_ledger/internal/platform/config"
	"github.com/finpulse/finpulse_ledger/internal/utils"
)

// authService authenticates the single ledger operator configured through
// OPERATOR_USERNAME and OPERATOR_PASSWORD_HASH.
type authService struct {
	BaseService
	cfg *config.Config
}

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{cfg: cfg}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login checks the operator credentials and issues an access token.
func (s *authService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if s.cfg.OperatorPasswordHash == "" {
		s.GetLogger(ctx).Warn("Login attempted but no operator password hash is configured")
		return "", time.Time{}, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.OperatorUsername)) == 1
	passOK := utils.CheckPasswordHash(password, s.cfg.OperatorPasswordHash)
	if !userOK || !passOK {
		s.GetLogger(ctx).Warn("Invalid login attempt", slog.String("username", username))
		return "", time.Time{}, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, expiresAt, err := utils.GenerateJWT(username, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token")
		return "", time.Time{}, apperrors.NewAppError(http.StatusInternalServerError, "failed to issue token", err)
	}
	s.LogInfo(ctx, "Operator logged in", slog.String("username", username))
	return token, expiresAt, nil
}
