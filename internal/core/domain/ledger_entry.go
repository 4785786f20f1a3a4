package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryType indicates whether a ledger entry is a Debit or a Credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// Sign returns +1 for credits and -1 for debits. Stored amounts are always
// positive; direction lives here.
func (e EntryType) Sign() (int, error) {
	switch e {
	case Credit:
		return 1, nil
	case Debit:
		return -1, nil
	default:
		return 0, fmt.Errorf("unknown entry type %q", string(e))
	}
}

// LedgerEntry is one movement against one account, tied to exactly one
// transaction. Append-only.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"`       // Primary Key (UUID)
	AccountID     string          `json:"accountID"`     // FK -> accounts
	TransactionID string          `json:"transactionID"` // FK -> transactions
	EntryType     EntryType       `json:"entryType"`
	Amount        decimal.Decimal `json:"amount"` // > 0, scale AmountScale
	CreatedAt     time.Time       `json:"createdAt"`
}
