package services

import (
	"context"
	"errors"
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

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerReader
	balance     portssvc.BalanceCalculator
	now         func() time.Time
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountClock overrides the clock used for CreatedAt.
func WithAccountClock(now func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.now = now
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerReader, balance portssvc.BalanceCalculator, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		balance:     balance,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, cmd portssvc.CreateAccountCommand) (*domain.Account, error) {
	cmd.UserID = strings.TrimSpace(cmd.UserID)
	cmd.AccountType = strings.TrimSpace(cmd.AccountType)
	cmd.CurrencyCode = strings.TrimSpace(cmd.CurrencyCode)
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	currency := cmd.CurrencyCode
	if currency == "" {
		currency = domain.DefaultCurrencyCode
	}

	account := domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       cmd.UserID,
		AccountType:  domain.AccountType(cmd.AccountType),
		CurrencyCode: currency,
		Status:       domain.AccountActive,
		CreatedAt:    s.now().UTC(),
		Balance:      decimal.Zero,
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, s.storeError(ctx, err, "failed to save account", slog.String("account_id", account.AccountID))
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("user_id", account.UserID))
	return &account, nil
}

func (s *accountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, s.storeError(ctx, err, "failed to find account", slog.String("account_id", accountID))
	}

	balance, err := s.balance.ComputeBalance(ctx, s.ledgerRepo, accountID)
	if err != nil {
		return nil, s.storeError(ctx, err, "failed to compute balance", slog.String("account_id", accountID))
	}
	account.Balance = balance
	return account, nil
}

// GetLedgerHistory does not check that the account exists; an unknown
// account simply has no entries.
func (s *accountService) GetLedgerHistory(ctx context.Context, accountID string) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.ListEntriesByAccountID(ctx, accountID)
	if err != nil {
		return nil, s.storeError(ctx, err, "failed to list ledger entries", slog.String("account_id", accountID))
	}
	if entries == nil {
		return []domain.LedgerEntry{}, nil
	}
	s.LogDebug(ctx, "Ledger history retrieved", slog.String("account_id", accountID), slog.Int("count", len(entries)))
	return entries, nil
}
