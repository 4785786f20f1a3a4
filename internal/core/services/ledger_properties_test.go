package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/locking"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/memory"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerFixture struct {
	store *memory.Store
	svc   *portssvc.ServiceContainer
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	store := memory.NewStore(locking.NewLocalManager(5 * time.Second))
	return &ledgerFixture{
		store: store,
		svc:   services.NewServiceContainer(memory.NewRepositoryProvider(store)),
	}
}

func (f *ledgerFixture) openAccount(t *testing.T) string {
	t.Helper()
	acc, err := f.svc.Account.CreateAccount(context.Background(), portssvc.CreateAccountCommand{UserID: "user", AccountType: "checking"})
	require.NoError(t, err)
	return acc.AccountID
}

func (f *ledgerFixture) balance(t *testing.T, accountID string) decimal.Decimal {
	t.Helper()
	acc, err := f.svc.Account.GetAccount(context.Background(), accountID)
	require.NoError(t, err)
	return acc.Balance
}

func (f *ledgerFixture) entryCount(t *testing.T, accountIDs ...string) int {
	t.Helper()
	n := 0
	for _, id := range accountIDs {
		entries, err := f.svc.Account.GetLedgerHistory(context.Background(), id)
		require.NoError(t, err)
		n += len(entries)
	}
	return n
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLedger_ConcurrentTransfersNeverOverdraw(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	a, b := f.openAccount(t), f.openAccount(t)

	_, err := f.svc.Transaction.Deposit(ctx, portssvc.DepositCommand{AccountID: a, Amount: dec("100.00")})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded, rejected := 0, 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Transaction.Transfer(ctx, portssvc.TransferCommand{
				SourceAccountID: a, DestinationAccountID: b, Amount: dec("20.00"),
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case apperrors.Kind(err) == apperrors.KindInsufficientFunds:
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 5, rejected)
	assert.Equal(t, "0.0000", f.balance(t, a).StringFixed(4))
	assert.Equal(t, "100.0000", f.balance(t, b).StringFixed(4))
	assert.Equal(t, 11, f.entryCount(t, a, b))
}

func TestLedger_ConcurrentWithdrawalsFollowFloorLaw(t *testing.T) {
	cases := []struct {
		start  string
		amount string
		n      int
	}{
		{start: "100", amount: "30", n: 8},
		{start: "50.5", amount: "0.75", n: 80},
		{start: "10", amount: "10", n: 4},
		{start: "0", amount: "1", n: 3},
	}

	for _, tc := range cases {
		t.Run(tc.start+"/"+tc.amount, func(t *testing.T) {
			f := newLedgerFixture(t)
			ctx := context.Background()
			acc := f.openAccount(t)
			start, amount := dec(tc.start), dec(tc.amount)
			if start.IsPositive() {
				_, err := f.svc.Transaction.Deposit(ctx, portssvc.DepositCommand{AccountID: acc, Amount: start})
				require.NoError(t, err)
			}

			var wg sync.WaitGroup
			var mu sync.Mutex
			succeeded := 0
			for i := 0; i < tc.n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := f.svc.Transaction.Withdraw(ctx, portssvc.WithdrawCommand{AccountID: acc, Amount: amount})
					if err == nil {
						mu.Lock()
						succeeded++
						mu.Unlock()
						return
					}
					assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
				}()
			}
			wg.Wait()

			wantSucceeded := int(start.Div(amount).Floor().IntPart())
			if wantSucceeded > tc.n {
				wantSucceeded = tc.n
			}
			assert.Equal(t, wantSucceeded, succeeded)

			final := f.balance(t, acc)
			want := start.Sub(amount.Mul(decimal.NewFromInt(int64(wantSucceeded))))
			assert.True(t, final.Equal(want), "final %s want %s", final, want)
			assert.False(t, final.IsNegative())
		})
	}
}

func TestLedger_BalanceEqualsSignedSumOfEntries(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	a, b := f.openAccount(t), f.openAccount(t)

	steps := []func() error{
		func() error {
			_, err := f.svc.Transaction.Deposit(ctx, portssvc.DepositCommand{AccountID: a, Amount: dec("80.1234")})
			return err
		},
		func() error {
			_, err := f.svc.Transaction.Transfer(ctx, portssvc.TransferCommand{SourceAccountID: a, DestinationAccountID: b, Amount: dec("30")})
			return err
		},
		func() error {
			_, err := f.svc.Transaction.Withdraw(ctx, portssvc.WithdrawCommand{AccountID: b, Amount: dec("12.5")})
			return err
		},
		func() error {
			_, err := f.svc.Transaction.Withdraw(ctx, portssvc.WithdrawCommand{AccountID: a, Amount: dec("1000")})
			return err
		},
	}

	for i, step := range steps {
		_ = step()
		for _, id := range []string{a, b} {
			entries, err := f.svc.Account.GetLedgerHistory(ctx, id)
			require.NoError(t, err)
			sum, err := accounting.SignedSum(entries)
			require.NoError(t, err)
			assert.True(t, f.balance(t, id).Equal(sum), "step %d account %s", i, id)
		}
	}
	assert.Equal(t, "50.1234", f.balance(t, a).StringFixed(4))
	assert.Equal(t, "17.5000", f.balance(t, b).StringFixed(4))
}

func TestLedger_RejectionsWriteNothing(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	a, b := f.openAccount(t), f.openAccount(t)
	_, err := f.svc.Transaction.Deposit(ctx, portssvc.DepositCommand{AccountID: a, Amount: dec("5")})
	require.NoError(t, err)
	before := f.entryCount(t, a, b)

	_, err = f.svc.Transaction.Withdraw(ctx, portssvc.WithdrawCommand{AccountID: a, Amount: dec("5.0001")})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	_, err = f.svc.Transaction.Transfer(ctx, portssvc.TransferCommand{SourceAccountID: a, DestinationAccountID: b, Amount: dec("6")})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	_, err = f.svc.Transaction.Deposit(ctx, portssvc.DepositCommand{AccountID: a, Amount: dec("0")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = f.svc.Transaction.Deposit(ctx, portssvc.DepositCommand{AccountID: a, Amount: dec("-1")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = f.svc.Transaction.Withdraw(ctx, portssvc.WithdrawCommand{AccountID: a, Amount: dec("0")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = f.svc.Transaction.Transfer(ctx, portssvc.TransferCommand{SourceAccountID: a, DestinationAccountID: "ghost", Amount: dec("1")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.Equal(t, before, f.entryCount(t, a, b))
	assert.Equal(t, "5.0000", f.balance(t, a).StringFixed(4))

	unbalanced, err := f.svc.Audit.CheckTransactionBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, unbalanced, "only the deposit exists")
}

func TestLedger_PersistedTransactionsHaveExpectedShape(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	a, b := f.openAccount(t), f.openAccount(t)

	dep, err := f.svc.Transaction.Deposit(ctx, portssvc.DepositCommand{AccountID: a, Amount: dec("10")})
	require.NoError(t, err)
	wd, err := f.svc.Transaction.Withdraw(ctx, portssvc.WithdrawCommand{AccountID: a, Amount: dec("1")})
	require.NoError(t, err)
	tr, err := f.svc.Transaction.Transfer(ctx, portssvc.TransferCommand{SourceAccountID: a, DestinationAccountID: b, Amount: dec("2")})
	require.NoError(t, err)

	for _, id := range []string{dep.TransactionID, wd.TransactionID, tr.TransactionID} {
		stored, err := f.svc.Transaction.GetTransaction(ctx, id)
		require.NoError(t, err)
		assert.NoError(t, stored.Validate())
		want, _ := stored.Type.ExpectedEntryCount()
		assert.Len(t, stored.Entries, want)
	}

	stored, err := f.svc.Transaction.GetTransaction(ctx, tr.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, domain.Debit, stored.Entries[0].EntryType)
	assert.Equal(t, a, stored.Entries[0].AccountID)
	assert.Equal(t, domain.Credit, stored.Entries[1].EntryType)
	assert.Equal(t, b, stored.Entries[1].AccountID)
}

func TestLedger_ReadsArePure(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	a := f.openAccount(t)
	_, err := f.svc.Transaction.Deposit(ctx, portssvc.DepositCommand{AccountID: a, Amount: dec("3")})
	require.NoError(t, err)

	acc1, err := f.svc.Account.GetAccount(ctx, a)
	require.NoError(t, err)
	acc2, err := f.svc.Account.GetAccount(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, acc1, acc2)

	h1, err := f.svc.Account.GetLedgerHistory(ctx, a)
	require.NoError(t, err)
	h2, err := f.svc.Account.GetLedgerHistory(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestLedger_OppositeTransfersDoNotDeadlock(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	a, b := f.openAccount(t), f.openAccount(t)
	for _, id := range []string{a, b} {
		_, err := f.svc.Transaction.Deposit(ctx, portssvc.DepositCommand{AccountID: id, Amount: dec("1000")})
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := f.svc.Transaction.Transfer(ctx, portssvc.TransferCommand{SourceAccountID: a, DestinationAccountID: b, Amount: dec("1")})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := f.svc.Transaction.Transfer(ctx, portssvc.TransferCommand{SourceAccountID: b, DestinationAccountID: a, Amount: dec("1")})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, "1000.0000", f.balance(t, a).StringFixed(4))
	assert.Equal(t, "1000.0000", f.balance(t, b).StringFixed(4))

	liquidity, err := f.svc.Audit.ComputeNetLiquidity(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2000.0000", liquidity.StringFixed(4))
}
