package domain

import "github.com/shopspring/decimal"

// IntegrityStatus summarises an integrity report.
type IntegrityStatus string

const (
	Healthy              IntegrityStatus = "Healthy"
	IntegrityCompromised IntegrityStatus = "Integrity Compromised"
)

// IntegrityReport is a point-in-time health report of the whole store.
type IntegrityReport struct {
	TotalSystemLiquidity        decimal.Decimal `json:"totalSystemLiquidity"`
	UnbalancedTransactionsCount int             `json:"unbalancedTransactionsCount"`
	Status                      IntegrityStatus `json:"status"`
}

// NewIntegrityReport derives the status from the unbalanced count.
func NewIntegrityReport(liquidity decimal.Decimal, unbalanced int) IntegrityReport {
	status := Healthy
	if unbalanced != 0 {
		status = IntegrityCompromised
	}
	return IntegrityReport{
		TotalSystemLiquidity:        liquidity,
		UnbalancedTransactionsCount: unbalanced,
		Status:                      status,
	}
}
