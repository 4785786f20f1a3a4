package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AuditService defines the store-wide integrity checks
type AuditService interface {
	// ComputeNetLiquidity returns total credits minus total debits.
	ComputeNetLiquidity(ctx context.Context) (decimal.Decimal, error)

	// CheckTransactionBalance counts transactions with an odd number of entries.
	CheckTransactionBalance(ctx context.Context) (int, error)

	// IntegrityCheck builds both figures from one consistent snapshot.
	IntegrityCheck(ctx context.Context) (*domain.IntegrityReport, error)
}
