package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	// Returns an error wrapping apperrors.ErrNotFound when the account does not exist.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. Accounts are never updated afterwards.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
