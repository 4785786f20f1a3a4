package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryAggregator exposes the per-account sums a balance is derived from.
// Both the plain store and an open unit of work satisfy it.
type EntryAggregator interface {
	// SumEntries returns the sum of CREDIT amounts and the sum of DEBIT amounts
	// recorded against accountID. Both are zero when the account has no entries.
	SumEntries(ctx context.Context, accountID string) (credits decimal.Decimal, debits decimal.Decimal, err error)
}

// LedgerTx is an open unit of work. Reads through it see its own pending
// writes. Exclusive holds taken through LockAccount live until Commit or
// Rollback.
type LedgerTx interface {
	AccountReader
	EntryAggregator

	// LockAccount takes the exclusive hold on accountID for the lifetime of the
	// unit of work and returns the account. Waiting is bounded; exceeding the
	// bound yields an error wrapping apperrors.ErrUnavailable.
	LockAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// SaveTransaction stages a transaction together with its entries.
	// Nothing is visible outside the unit of work until Commit.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// Commit makes every staged write durable and releases all holds.
	Commit(ctx context.Context) error

	// Rollback discards staged writes and releases all holds.
	// Calling it after Commit is a no-op.
	Rollback(ctx context.Context) error
}

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a new unit of work.
	Begin(ctx context.Context) (LedgerTx, error)
}
