package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// BalanceCalculator derives an account balance from its entries.
type BalanceCalculator interface {
	// ComputeBalance returns credits minus debits for accountID as seen by reader.
	// Pass an open unit of work to read inside its lock and isolation scope.
	ComputeBalance(ctx context.Context, reader repositories.EntryAggregator, accountID string) (decimal.Decimal, error)
}
