package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/locking"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var errTxDone = fmt.Errorf("%w: unit of work already finished", apperrors.ErrInternal)

// memoryTx stages transactions until Commit applies them under the store's
// write lock. Holds are released when the unit of work ends.
type memoryTx struct {
	store  *Store
	staged []domain.Transaction
	held   map[string]locking.Releaser
	done   bool
}

func (t *memoryTx) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return t.store.FindAccountByID(ctx, accountID)
}

// LockAccount is reentrant within one unit of work.
func (t *memoryTx) LockAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	if t.done {
		return nil, errTxDone
	}
	acc, err := t.store.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if _, ok := t.held[accountID]; ok {
		return acc, nil
	}
	r, err := t.store.locks.Acquire(ctx, locking.AccountKey(accountID))
	if err != nil {
		return nil, err
	}
	t.held[accountID] = r
	return acc, nil
}

// SumEntries includes entries staged in this unit of work.
func (t *memoryTx) SumEntries(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	credits, debits, err := t.store.SumEntries(ctx, accountID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	var pending []domain.LedgerEntry
	for _, txn := range t.staged {
		for _, e := range txn.Entries {
			if e.AccountID == accountID {
				pending = append(pending, e)
			}
		}
	}
	pc, pd, err := accounting.SumByType(pending)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return credits.Add(pc), debits.Add(pd), nil
}

func (t *memoryTx) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	if t.done {
		return errTxDone
	}
	if err := txn.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	entries := make([]domain.LedgerEntry, len(txn.Entries))
	copy(entries, txn.Entries)
	txn.Entries = entries
	t.staged = append(t.staged, txn)
	return nil
}

func (t *memoryTx) Commit(ctx context.Context) error {
	if t.done {
		return errTxDone
	}
	defer t.finish()
	return t.store.apply(t.staged)
}

func (t *memoryTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.finish()
	return nil
}

func (t *memoryTx) finish() {
	t.done = true
	t.staged = nil
	for id, r := range t.held {
		r.Release()
		delete(t.held, id)
	}
}

var _ portsrepo.LedgerTx = (*memoryTx)(nil)
