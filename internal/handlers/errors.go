package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// retryAfterSeconds is advertised on 503 responses.
const retryAfterSeconds = "1"

// respondError maps err to a status by its kind. Internal failures are
// logged here and answered without detail.
func respondError(c *gin.Context, logger *slog.Logger, op string, err error) {
	switch apperrors.Kind(err) {
	case apperrors.KindInvalidRequest:
		logger.Warn("Validation error", slog.String("op", op), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.KindNotFound:
		logger.Warn("Resource not found", slog.String("op", op), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.KindInsufficientFunds:
		logger.Info("Rejected for insufficient funds", slog.String("op", op))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "insufficient funds"})
	case apperrors.KindUnavailable:
		logger.Warn("Account busy", slog.String("op", op), slog.String("error", err.Error()))
		c.Header("Retry-After", retryAfterSeconds)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unavailable, retry"})
	default:
		logger.Error("Request failed", slog.String("op", op), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// respondBindError answers a malformed request body.
func respondBindError(c *gin.Context, logger *slog.Logger, op string, err error) {
	logger.Warn("Failed to bind JSON", slog.String("op", op), slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}
