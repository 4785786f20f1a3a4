package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// storeError passes known outcome kinds through untouched. Anything else is
// logged with its detail and surfaced as an internal error.
func (s *BaseService) storeError(ctx context.Context, err error, msg string, keyvals ...any) error {
	switch {
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInsufficientFunds):
		return err
	case errors.Is(err, apperrors.ErrUnavailable):
		s.LogInfo(ctx, "Account hold not available", append(keyvals, slog.String("error", err.Error()))...)
		return err
	case errors.Is(err, context.DeadlineExceeded):
		s.LogError(ctx, err, msg, keyvals...)
		return apperrors.NewUnavailableError("temporarily unavailable, retry", err)
	case errors.Is(err, apperrors.ErrInternal):
		s.LogError(ctx, err, msg, keyvals...)
		return err
	default:
		s.LogError(ctx, err, msg, keyvals...)
		return apperrors.NewAppError(500, msg, err)
	}
}
