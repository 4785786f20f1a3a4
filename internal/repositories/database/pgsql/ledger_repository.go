package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/locking"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	entryColumns = `entry_seq, entry_id, account_id, transaction_id, entry_type, amount, created_at`

	sumAccountEntriesQuery = `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE entry_type = 'CREDIT'), 0),
			COALESCE(SUM(amount) FILTER (WHERE entry_type = 'DEBIT'), 0)
		FROM ledger_entries
		WHERE account_id = $1
	`
)

type PgxLedgerRepository struct {
	BaseRepository
	lockTimeout time.Duration
	locks       locking.Manager
}

// LedgerOption configures a PgxLedgerRepository.
type LedgerOption func(*PgxLedgerRepository)

// WithLockTimeout bounds how long LockAccount waits on the row lock.
func WithLockTimeout(d time.Duration) LedgerOption {
	return func(r *PgxLedgerRepository) {
		r.lockTimeout = d
	}
}

// WithExternalLocks makes LockAccount take a hold from m before the row
// lock, so processes sharing m also serialize on the account.
func WithExternalLocks(m locking.Manager) LedgerOption {
	return func(r *PgxLedgerRepository) {
		r.locks = m
	}
}

// newPgxLedgerRepository creates a new repository for transactions and entries.
func newPgxLedgerRepository(pool DBPool, opts ...LedgerOption) *PgxLedgerRepository {
	r := &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// Begin opens a READ COMMITTED transaction. Gated writes rely on the row lock
// taken by LockAccount, not on the isolation level.
func (r *PgxLedgerRepository) Begin(ctx context.Context) (portsrepo.LedgerTx, error) {
	tx, err := r.beginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, err
	}
	return &pgxLedgerTx{
		tx:          tx,
		lockTimeout: r.lockTimeout,
		locks:       r.locks,
		held:        make(map[string]locking.Releaser),
	}, nil
}

func (r *PgxLedgerRepository) SumEntries(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	return sumAccountEntries(ctx, r.Pool, accountID)
}

func sumAccountEntries(ctx context.Context, q querier, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	var credits, debits decimal.Decimal
	if err := q.QueryRow(ctx, sumAccountEntriesQuery, accountID).Scan(&credits, &debits); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum entries for account %s: %w", accountID, err)
	}
	return credits, debits, nil
}

// ListEntriesByAccountID returns entries newest first; ties on created_at are
// broken by write order, latest first.
func (r *PgxLedgerRepository) ListEntriesByAccountID(ctx context.Context, accountID string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC, entry_seq DESC`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for account %s: %w", accountID, err)
	}
	entries, err := scanEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan entries for account %s: %w", accountID, err)
	}
	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

// FindTransactionByID returns the transaction with its entries in write order.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT transaction_id, type, status, description, created_at
		FROM transactions
		WHERE transaction_id = $1
	`
	var m models.Transaction
	err := r.Pool.QueryRow(ctx, query, transactionID).Scan(&m.TransactionID, &m.Type, &m.Status, &m.Description, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	rows, err := r.Pool.Query(ctx, `SELECT `+entryColumns+` FROM ledger_entries WHERE transaction_id = $1 ORDER BY entry_seq ASC`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for transaction %s: %w", transactionID, err)
	}
	entries, err := scanEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan entries for transaction %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainTransaction(m, entries)
	return &txn, nil
}

func scanEntries(rows pgx.Rows) ([]models.LedgerEntry, error) {
	defer rows.Close()
	var out []models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		if err := rows.Scan(&e.EntrySeq, &e.EntryID, &e.AccountID, &e.TransactionID, &e.EntryType, &e.Amount, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
