package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// LedgerReader defines read operations for transactions and entries
type LedgerReader interface {
	EntryAggregator

	// ListEntriesByAccountID returns every entry of the account, newest first.
	// An unknown account yields an empty slice.
	ListEntriesByAccountID(ctx context.Context, accountID string) ([]domain.LedgerEntry, error)

	// FindTransactionByID returns a transaction with its entries populated.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
}

// LedgerRepositoryFacade combines ledger reads with unit-of-work support
type LedgerRepositoryFacade interface {
	LedgerReader
	TransactionManager
}
