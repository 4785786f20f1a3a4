package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/locking"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var errTxDone = fmt.Errorf("%w: unit of work already finished", apperrors.ErrInternal)

// pgxLedgerTx is a unit of work on one pgx transaction. Row locks end with
// the transaction; external holds are released right after it.
type pgxLedgerTx struct {
	tx          pgx.Tx
	lockTimeout time.Duration
	locks       locking.Manager
	held        map[string]locking.Releaser
	timeoutSet  bool
	done        bool
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

func (t *pgxLedgerTx) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return findAccount(ctx, t.tx, accountID, false)
}

func (t *pgxLedgerTx) SumEntries(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	return sumAccountEntries(ctx, t.tx, accountID)
}

// LockAccount takes SELECT ... FOR UPDATE on the account row. With
// lockTimeout set, Postgres aborts the wait with 55P03, reported as
// ErrUnavailable.
func (t *pgxLedgerTx) LockAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	if t.done {
		return nil, errTxDone
	}
	if t.locks != nil {
		if _, ok := t.held[accountID]; !ok {
			r, err := t.locks.Acquire(ctx, locking.AccountKey(accountID))
			if err != nil {
				return nil, err
			}
			t.held[accountID] = r
		}
	}
	if t.lockTimeout > 0 && !t.timeoutSet {
		// SET does not take bind parameters; the value is an integer we format.
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", t.lockTimeout.Milliseconds())
		if _, err := t.tx.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("failed to set lock timeout: %w", err)
		}
		t.timeoutSet = true
	}
	return findAccount(ctx, t.tx, accountID, true)
}

// SaveTransaction writes the transaction row and then its entries. A missing
// account surfaces as a foreign key violation and is reported as NotFound.
func (t *pgxLedgerTx) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	if t.done {
		return errTxDone
	}
	if err := txn.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	m := mapping.ToModelTransaction(txn)
	_, err := t.tx.Exec(ctx, `
		INSERT INTO transactions (transaction_id, type, status, description, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`, m.TransactionID, m.Type, m.Status, m.Description, m.CreatedAt)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}

	for _, entry := range txn.Entries {
		e := mapping.ToModelLedgerEntry(entry)
		_, err := t.tx.Exec(ctx, `
			INSERT INTO ledger_entries (entry_id, account_id, transaction_id, entry_type, amount, created_at)
			VALUES ($1, $2, $3, $4, $5, $6);
		`, e.EntryID, e.AccountID, e.TransactionID, e.EntryType, e.Amount, e.CreatedAt)
		if err != nil {
			switch pgErrorCode(err) {
			case pgForeignKeyViolation:
				return apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", e.AccountID))
			case pgNumericOverflow:
				return apperrors.NewValidationError(fmt.Sprintf("invalid amount: %s does not fit the ledger column", e.Amount.String()))
			}
			return fmt.Errorf("failed to insert ledger entry %s: %w", e.EntryID, err)
		}
	}
	return nil
}

func (t *pgxLedgerTx) Commit(ctx context.Context) error {
	if t.done {
		return errTxDone
	}
	defer t.finish()
	return commitTx(ctx, t.tx)
}

func (t *pgxLedgerTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	defer t.finish()
	return rollbackTx(ctx, t.tx)
}

func (t *pgxLedgerTx) finish() {
	t.done = true
	for id, r := range t.held {
		r.Release()
		delete(t.held, id)
	}
}
