package repositories

import (
	"context"

	"github.com/shopspring/decimal"
)

// AuditReader defines the store-wide aggregates used by the integrity audit
type AuditReader interface {
	// SumAllEntries returns the total of all CREDIT and all DEBIT amounts.
	SumAllEntries(ctx context.Context) (credits decimal.Decimal, debits decimal.Decimal, err error)

	// CountOddEntryTransactions counts transactions whose entry count is odd.
	CountOddEntryTransactions(ctx context.Context) (int, error)
}

// AuditRepository defines operations for retrieving integrity data
type AuditRepository interface {
	AuditReader

	// Snapshot runs fn against a single consistent read-only view of the store.
	// Writers are not blocked for longer than the snapshot takes to open.
	Snapshot(ctx context.Context, fn func(reader AuditReader) error) error
}
