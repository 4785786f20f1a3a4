package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

type auditHandler struct {
	auditService portssvc.AuditService
}

func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditService) {
	h := &auditHandler{auditService: auditService}

	audit := rg.Group("/audit")
	{
		audit.GET("/integrity-check", h.integrityCheck)
	}
}

// integrityCheck godoc
// @Summary Store-wide liquidity and transaction parity report
// @Tags audit
// @Produce  json
// @Success 200 {object} dto.IntegrityReportResponse
// @Router /audit/integrity-check [get]
func (h *auditHandler) integrityCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.auditService.IntegrityCheck(c.Request.Context())
	if err != nil {
		respondError(c, logger, "IntegrityCheck", err)
		return
	}

	logger.Info("Integrity check completed",
		slog.String("status", string(report.Status)),
		slog.Int("unbalanced_transactions", report.UnbalancedTransactionsCount),
	)
	c.JSON(http.StatusOK, dto.ToIntegrityReportResponse(report))
}
