package pgsql

import (
	"context"
	"fmt"

	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	sumAllEntriesQuery = `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE entry_type = 'CREDIT'), 0),
			COALESCE(SUM(amount) FILTER (WHERE entry_type = 'DEBIT'), 0)
		FROM ledger_entries
	`
	countOddEntryTransactionsQuery = `
		SELECT COUNT(*) FROM (
			SELECT transaction_id
			FROM ledger_entries
			GROUP BY transaction_id
			HAVING COUNT(*) % 2 <> 0
		) AS odd
	`
)

// auditRepository implements the AuditRepository interface
type auditRepository struct {
	BaseRepository
}

// newAuditRepository creates a new audit repository
func newAuditRepository(pool DBPool) *auditRepository {
	return &auditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepository = (*auditRepository)(nil)

func (r *auditRepository) SumAllEntries(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	return auditQueries{q: r.Pool}.SumAllEntries(ctx)
}

func (r *auditRepository) CountOddEntryTransactions(ctx context.Context) (int, error) {
	return auditQueries{q: r.Pool}.CountOddEntryTransactions(ctx)
}

// Snapshot runs fn inside a REPEATABLE READ READ ONLY transaction, so every
// query fn makes sees the same committed state without blocking writers.
func (r *auditRepository) Snapshot(ctx context.Context, fn func(reader portsrepo.AuditReader) error) error {
	tx, err := r.beginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return err
	}
	if err := fn(auditQueries{q: tx}); err != nil {
		_ = rollbackTx(ctx, tx)
		return err
	}
	return commitTx(ctx, tx)
}

type auditQueries struct {
	q querier
}

func (a auditQueries) SumAllEntries(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	var credits, debits decimal.Decimal
	if err := a.q.QueryRow(ctx, sumAllEntriesQuery).Scan(&credits, &debits); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("error querying entry totals: %w", err)
	}
	return credits, debits, nil
}

func (a auditQueries) CountOddEntryTransactions(ctx context.Context) (int, error) {
	var count int64
	if err := a.q.QueryRow(ctx, countOddEntryTransactionsQuery).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting unbalanced transactions: %w", err)
	}
	return int(count), nil
}
