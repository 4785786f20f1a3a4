package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/locking"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
	now   time.Time
}

func (suite *StoreTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore(locking.NewLocalManager(50 * time.Millisecond))
	suite.now = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	for _, id := range []string{"acc_a", "acc_b"} {
		suite.Require().NoError(suite.store.SaveAccount(suite.ctx, domain.Account{
			AccountID:    id,
			UserID:       "user_1",
			AccountType:  "checking",
			CurrencyCode: "USD",
			Status:       domain.AccountActive,
			CreatedAt:    suite.now,
		}))
	}
}

func (suite *StoreTestSuite) deposit(txnID, accountID, amount string, at time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID: txnID,
		Type:          domain.Deposit,
		Status:        domain.Completed,
		Description:   domain.DefaultDepositDescription,
		CreatedAt:     at,
		Entries: []domain.LedgerEntry{{
			EntryID:       txnID + "_e1",
			AccountID:     accountID,
			TransactionID: txnID,
			EntryType:     domain.Credit,
			Amount:        decimal.RequireFromString(amount),
			CreatedAt:     at,
		}},
	}
}

func (suite *StoreTestSuite) commit(txn domain.Transaction) {
	tx, err := suite.store.Begin(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().NoError(tx.SaveTransaction(suite.ctx, txn))
	suite.Require().NoError(tx.Commit(suite.ctx))
}

func (suite *StoreTestSuite) TestSaveAccount_Duplicate() {
	err := suite.store.SaveAccount(suite.ctx, domain.Account{AccountID: "acc_a"})
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *StoreTestSuite) TestFindAccountByID_NotFound() {
	_, err := suite.store.FindAccountByID(suite.ctx, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *StoreTestSuite) TestCommit_MakesEntriesVisible() {
	suite.commit(suite.deposit("t1", "acc_a", "100", suite.now))

	credits, debits, err := suite.store.SumEntries(suite.ctx, "acc_a")
	suite.Require().NoError(err)
	suite.True(credits.Equal(decimal.NewFromInt(100)))
	suite.True(debits.IsZero())

	txn, err := suite.store.FindTransactionByID(suite.ctx, "t1")
	suite.Require().NoError(err)
	suite.Len(txn.Entries, 1)
	suite.Equal(domain.Completed, txn.Status)
}

func (suite *StoreTestSuite) TestRollback_DiscardsStagedWrites() {
	tx, err := suite.store.Begin(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().NoError(tx.SaveTransaction(suite.ctx, suite.deposit("t1", "acc_a", "100", suite.now)))

	credits, _, err := tx.SumEntries(suite.ctx, "acc_a")
	suite.Require().NoError(err)
	suite.True(credits.Equal(decimal.NewFromInt(100)), "unit of work sees its own writes")

	outside, _, err := suite.store.SumEntries(suite.ctx, "acc_a")
	suite.Require().NoError(err)
	suite.True(outside.IsZero(), "staged writes are invisible outside")

	suite.Require().NoError(tx.Rollback(suite.ctx))
	suite.Require().NoError(tx.Rollback(suite.ctx))

	_, err = suite.store.FindTransactionByID(suite.ctx, "t1")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *StoreTestSuite) TestCommit_RejectsUnknownAccount() {
	tx, err := suite.store.Begin(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().NoError(tx.SaveTransaction(suite.ctx, suite.deposit("t1", "ghost", "1", suite.now)))

	err = tx.Commit(suite.ctx)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.store.FindTransactionByID(suite.ctx, "t1")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *StoreTestSuite) TestLockAccount_HeldUntilUnitOfWorkEnds() {
	first, err := suite.store.Begin(suite.ctx)
	suite.Require().NoError(err)
	_, err = first.LockAccount(suite.ctx, "acc_a")
	suite.Require().NoError(err)

	// reentrant inside the same unit of work
	_, err = first.LockAccount(suite.ctx, "acc_a")
	suite.Require().NoError(err)

	second, err := suite.store.Begin(suite.ctx)
	suite.Require().NoError(err)
	_, err = second.LockAccount(suite.ctx, "acc_a")
	suite.ErrorIs(err, apperrors.ErrUnavailable)

	_, err = second.LockAccount(suite.ctx, "acc_b")
	suite.NoError(err, "disjoint accounts are independent")
	suite.Require().NoError(second.Rollback(suite.ctx))

	suite.Require().NoError(first.Commit(suite.ctx))

	third, err := suite.store.Begin(suite.ctx)
	suite.Require().NoError(err)
	_, err = third.LockAccount(suite.ctx, "acc_a")
	suite.NoError(err)
	suite.NoError(third.Rollback(suite.ctx))
}

func (suite *StoreTestSuite) TestLockAccount_NotFound() {
	tx, err := suite.store.Begin(suite.ctx)
	suite.Require().NoError(err)
	defer tx.Rollback(suite.ctx)

	_, err = tx.LockAccount(suite.ctx, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *StoreTestSuite) TestListEntriesByAccountID_NewestFirst() {
	suite.commit(suite.deposit("t1", "acc_a", "1", suite.now))
	suite.commit(suite.deposit("t2", "acc_a", "2", suite.now.Add(time.Minute)))
	suite.commit(suite.deposit("t3", "acc_a", "3", suite.now))

	entries, err := suite.store.ListEntriesByAccountID(suite.ctx, "acc_a")
	suite.Require().NoError(err)
	suite.Require().Len(entries, 3)
	suite.Equal("t2", entries[0].TransactionID)
	suite.Equal("t3", entries[1].TransactionID, "ties come back latest-written first")
	suite.Equal("t1", entries[2].TransactionID)

	empty, err := suite.store.ListEntriesByAccountID(suite.ctx, "unknown")
	suite.Require().NoError(err)
	suite.NotNil(empty)
	suite.Empty(empty)
}

func (suite *StoreTestSuite) TestSnapshot_AuditFigures() {
	suite.commit(suite.deposit("t1", "acc_a", "100", suite.now))
	suite.commit(domain.Transaction{
		TransactionID: "t2",
		Type:          domain.Transfer,
		Status:        domain.Completed,
		CreatedAt:     suite.now,
		Entries: []domain.LedgerEntry{
			{EntryID: "t2_e1", AccountID: "acc_a", TransactionID: "t2", EntryType: domain.Debit, Amount: decimal.NewFromInt(40), CreatedAt: suite.now},
			{EntryID: "t2_e2", AccountID: "acc_b", TransactionID: "t2", EntryType: domain.Credit, Amount: decimal.NewFromInt(40), CreatedAt: suite.now},
		},
	})

	var credits, debits decimal.Decimal
	var odd int
	err := suite.store.Snapshot(suite.ctx, func(r portsrepo.AuditReader) error {
		var err error
		credits, debits, err = r.SumAllEntries(suite.ctx)
		if err != nil {
			return err
		}
		odd, err = r.CountOddEntryTransactions(suite.ctx)
		return err
	})
	suite.Require().NoError(err)
	suite.True(credits.Equal(decimal.NewFromInt(140)))
	suite.True(debits.Equal(decimal.NewFromInt(40)))
	suite.Equal(1, odd)
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
