package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persisted row of the transactions table.
type Transaction struct {
	TransactionID string    `db:"transaction_id"`
	Type          string    `db:"type"`
	Status        string    `db:"status"`
	Description   string    `db:"description"`
	CreatedAt     time.Time `db:"created_at"`
}

// LedgerEntry is the persisted row of the ledger_entries table.
// EntrySeq is assigned by the database and orders entries by write time.
type LedgerEntry struct {
	EntrySeq      int64           `db:"entry_seq"`
	EntryID       string          `db:"entry_id"`
	AccountID     string          `db:"account_id"`
	TransactionID string          `db:"transaction_id"`
	EntryType     string          `db:"entry_type"`
	Amount        decimal.Decimal `db:"amount"` // NUMERIC(19,4)
	CreatedAt     time.Time       `db:"created_at"`
}
