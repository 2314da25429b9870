package services

import (
	"context"
	"log/slog"

	"github.com/finpulse/finpulse_ledger/internal/core/ledger"
	"github.com/finpulse/finpulse_ledger/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting. Ledger errors also
// carry their kind.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	if code := ledger.ErrorCode(err); code != "" {
		args = append(args, slog.String("kind", code))
	}
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a rejected request. Business rule violations are warnings,
// not errors.
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("reason", err.Error()))
	if code := ledger.ErrorCode(err); code != "" {
		args = append(args, slog.String("kind", code))
	}
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// logFailure logs err as a warning when the ledger rejected the request and
// as an error otherwise.
func (s *BaseService) logFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if ledger.ErrorCode(err) != "" {
		s.LogWarn(ctx, err, msg, keyvals...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}
