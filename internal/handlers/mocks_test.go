package handlers_test

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetLedgerHistory(ctx context.Context, accountID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, cmd portssvc.CreateAccountCommand) (*domain.Account, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) result(args mock.Arguments) (*domain.Transaction, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) Deposit(ctx context.Context, cmd portssvc.DepositCommand) (*domain.Transaction, error) {
	return m.result(m.Called(ctx, cmd))
}

func (m *MockTransactionService) Withdraw(ctx context.Context, cmd portssvc.WithdrawCommand) (*domain.Transaction, error) {
	return m.result(m.Called(ctx, cmd))
}

func (m *MockTransactionService) Transfer(ctx context.Context, cmd portssvc.TransferCommand) (*domain.Transaction, error) {
	return m.result(m.Called(ctx, cmd))
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return m.result(m.Called(ctx, transactionID))
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) ComputeNetLiquidity(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAuditService) CheckTransactionBalance(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockAuditService) IntegrityCheck(ctx context.Context) (*domain.IntegrityReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntegrityReport), args.Error(1)
}

var _ portssvc.AuditService = (*MockAuditService)(nil)
