package services

import (
	"context"

	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type balanceCalculator struct {
	BaseService
}

// NewBalanceCalculator creates the calculator shared by reads and gated writes.
func NewBalanceCalculator() portssvc.BalanceCalculator {
	return &balanceCalculator{}
}

func (b *balanceCalculator) ComputeBalance(ctx context.Context, reader portsrepo.EntryAggregator, accountID string) (decimal.Decimal, error) {
	credits, debits, err := reader.SumEntries(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	balance := accounting.NetBalance(credits, debits)
	b.LogDebug(ctx, "Balance computed", "account_id", accountID, "balance", balance.String())
	return balance, nil
}

var _ portssvc.BalanceCalculator = (*balanceCalculator)(nil)
