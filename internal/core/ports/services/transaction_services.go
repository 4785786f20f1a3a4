package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// TransactionWriterSvc defines the balance-affecting operations
type TransactionWriterSvc interface {
	// Deposit credits an account. Never gated on balance.
	Deposit(ctx context.Context, cmd DepositCommand) (*domain.Transaction, error)

	// Withdraw debits an account if its balance covers the amount.
	Withdraw(ctx context.Context, cmd WithdrawCommand) (*domain.Transaction, error)

	// Transfer debits the source and credits the destination atomically,
	// gated on the source balance.
	Transfer(ctx context.Context, cmd TransferCommand) (*domain.Transaction, error)
}

// TransactionReaderSvc defines read operations for recorded transactions
type TransactionReaderSvc interface {
	// GetTransaction returns a transaction with its entries.
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionWriterSvc
	TransactionReaderSvc
}
