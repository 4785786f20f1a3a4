package dto

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils"
)

// IntegrityReportResponse is the wire form of domain.IntegrityReport.
type IntegrityReportResponse struct {
	TotalSystemLiquidity        string `json:"totalSystemLiquidity"`
	UnbalancedTransactionsCount int    `json:"unbalancedTransactionsCount"`
	Status                      string `json:"status"`
}

func ToIntegrityReportResponse(r *domain.IntegrityReport) IntegrityReportResponse {
	return IntegrityReportResponse{
		TotalSystemLiquidity:        utils.FormatAmount(r.TotalSystemLiquidity),
		UnbalancedTransactionsCount: r.UnbalancedTransactionsCount,
		Status:                      string(r.Status),
	}
}
