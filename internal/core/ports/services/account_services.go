package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount retrieves an account with its balance computed from its entries.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// GetLedgerHistory returns the account's entries, newest first.
	GetLedgerHistory(ctx context.Context, accountID string) ([]domain.LedgerEntry, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount registers a new ACTIVE account with a zero balance.
	CreateAccount(ctx context.Context, cmd CreateAccountCommand) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
