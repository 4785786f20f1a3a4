package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transactionService coordinates every balance-affecting write. Each
// operation runs inside one unit of work that holds the gating account
// until it commits or rolls back.
type transactionService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
	balance    portssvc.BalanceCalculator
	now        func() time.Time
	newID      func() string
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithTransactionClock overrides the clock used for CreatedAt.
func WithTransactionClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// WithIDGenerator overrides how transaction and entry ids are generated.
func WithIDGenerator(newID func() string) TransactionServiceOption {
	return func(s *transactionService) {
		s.newID = newID
	}
}

// NewTransactionService creates the transaction coordinator.
func NewTransactionService(ledgerRepo portsrepo.LedgerRepositoryFacade, balance portssvc.BalanceCalculator, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		ledgerRepo: ledgerRepo,
		balance:    balance,
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

type leg struct {
	accountID string
	entryType domain.EntryType
}

// newTransaction builds a COMPLETED transaction with one entry per leg, all
// stamped with the same instant.
func (s *transactionService) newTransaction(txType domain.TransactionType, description string, amount decimal.Decimal, legs ...leg) domain.Transaction {
	now := s.now().UTC()
	description = strings.TrimSpace(description)
	if description == "" {
		description = txType.DefaultDescription()
	}
	txn := domain.Transaction{
		TransactionID: s.newID(),
		Type:          txType,
		Status:        domain.Completed,
		Description:   description,
		CreatedAt:     now,
		Entries:       make([]domain.LedgerEntry, 0, len(legs)),
	}
	for _, l := range legs {
		txn.Entries = append(txn.Entries, domain.LedgerEntry{
			EntryID:       s.newID(),
			AccountID:     l.accountID,
			TransactionID: txn.TransactionID,
			EntryType:     l.entryType,
			Amount:        amount,
			CreatedAt:     now,
		})
	}
	return txn
}

// rollback is deferred by every operation; after a commit it does nothing.
func (s *transactionService) rollback(ctx context.Context, uow portsrepo.LedgerTx) {
	if err := uow.Rollback(ctx); err != nil {
		s.LogError(ctx, err, "Failed to roll back unit of work")
	}
}

// requireFunds rejects the operation when the balance of accountID, read
// through the open unit of work, cannot cover amount.
func (s *transactionService) requireFunds(ctx context.Context, uow portsrepo.LedgerTx, accountID string, amount decimal.Decimal) error {
	balance, err := s.balance.ComputeBalance(ctx, uow, accountID)
	if err != nil {
		return s.storeError(ctx, err, "failed to compute balance", slog.String("account_id", accountID))
	}
	if balance.LessThan(amount) {
		s.LogInfo(ctx, "Insufficient funds",
			slog.String("account_id", accountID),
			slog.String("balance", balance.StringFixed(domain.AmountScale)),
			slog.String("amount", amount.StringFixed(domain.AmountScale)))
		return apperrors.NewInsufficientFundsError("insufficient funds")
	}
	return nil
}

func (s *transactionService) persist(ctx context.Context, uow portsrepo.LedgerTx, txn domain.Transaction) error {
	if err := uow.SaveTransaction(ctx, txn); err != nil {
		return s.storeError(ctx, err, "failed to save transaction", slog.String("transaction_id", txn.TransactionID))
	}
	if err := uow.Commit(ctx); err != nil {
		return s.storeError(ctx, err, "failed to commit transaction", slog.String("transaction_id", txn.TransactionID))
	}
	return nil
}

func (s *transactionService) Deposit(ctx context.Context, cmd portssvc.DepositCommand) (*domain.Transaction, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	if err := validateAmount(cmd.Amount); err != nil {
		return nil, err
	}

	uow, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, s.storeError(ctx, err, "failed to begin unit of work")
	}
	defer s.rollback(ctx, uow)

	if _, err := uow.FindAccountByID(ctx, cmd.AccountID); err != nil {
		return nil, s.storeError(ctx, err, "failed to find account", slog.String("account_id", cmd.AccountID))
	}

	txn := s.newTransaction(domain.Deposit, cmd.Description, cmd.Amount,
		leg{accountID: cmd.AccountID, entryType: domain.Credit})
	if err := s.persist(ctx, uow, txn); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Deposit recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", cmd.AccountID),
		slog.String("amount", cmd.Amount.StringFixed(domain.AmountScale)))
	return &txn, nil
}

func (s *transactionService) Withdraw(ctx context.Context, cmd portssvc.WithdrawCommand) (*domain.Transaction, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	if err := validateAmount(cmd.Amount); err != nil {
		return nil, err
	}

	uow, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, s.storeError(ctx, err, "failed to begin unit of work")
	}
	defer s.rollback(ctx, uow)

	if _, err := uow.LockAccount(ctx, cmd.AccountID); err != nil {
		return nil, s.storeError(ctx, err, "failed to lock account", slog.String("account_id", cmd.AccountID))
	}
	if err := s.requireFunds(ctx, uow, cmd.AccountID, cmd.Amount); err != nil {
		return nil, err
	}

	txn := s.newTransaction(domain.Withdrawal, cmd.Description, cmd.Amount,
		leg{accountID: cmd.AccountID, entryType: domain.Debit})
	if err := s.persist(ctx, uow, txn); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Withdrawal recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", cmd.AccountID),
		slog.String("amount", cmd.Amount.StringFixed(domain.AmountScale)))
	return &txn, nil
}

// Transfer holds only the source account. The destination is checked for
// existence inside the same unit of work but is never locked.
func (s *transactionService) Transfer(ctx context.Context, cmd portssvc.TransferCommand) (*domain.Transaction, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	if err := validateAmount(cmd.Amount); err != nil {
		return nil, err
	}
	if cmd.SourceAccountID == cmd.DestinationAccountID {
		return nil, apperrors.NewValidationError("source and destination accounts must differ")
	}

	uow, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, s.storeError(ctx, err, "failed to begin unit of work")
	}
	defer s.rollback(ctx, uow)

	if _, err := uow.LockAccount(ctx, cmd.SourceAccountID); err != nil {
		return nil, s.storeError(ctx, err, "failed to lock source account", slog.String("account_id", cmd.SourceAccountID))
	}
	if err := s.requireFunds(ctx, uow, cmd.SourceAccountID, cmd.Amount); err != nil {
		return nil, err
	}
	if _, err := uow.FindAccountByID(ctx, cmd.DestinationAccountID); err != nil {
		return nil, s.storeError(ctx, err, "failed to find destination account", slog.String("account_id", cmd.DestinationAccountID))
	}

	txn := s.newTransaction(domain.Transfer, cmd.Description, cmd.Amount,
		leg{accountID: cmd.SourceAccountID, entryType: domain.Debit},
		leg{accountID: cmd.DestinationAccountID, entryType: domain.Credit})
	if err := s.persist(ctx, uow, txn); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Transfer recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("source_account_id", cmd.SourceAccountID),
		slog.String("destination_account_id", cmd.DestinationAccountID),
		slog.String("amount", cmd.Amount.StringFixed(domain.AmountScale)))
	return &txn, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, s.storeError(ctx, err, "failed to find transaction", slog.String("transaction_id", transactionID))
	}
	return txn, nil
}
