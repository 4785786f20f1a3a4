package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is a free-form classifier supplied at registration
// (e.g. "checking", "savings").
type AccountType string

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountActive AccountStatus = "ACTIVE"
)

// Account represents a ledger account within the core domain.
// Accounts are immutable after creation and never deleted.
type Account struct {
	AccountID    string        `json:"accountID"`    // Primary Key (UUID)
	UserID       string        `json:"userID"`       // Owner reference, not validated here
	AccountType  AccountType   `json:"accountType"`  // Free-form classifier
	CurrencyCode string        `json:"currencyCode"` // Carried per account, never matched on transfer
	Status       AccountStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	// Balance is derived from the account's entries on read; it is not persisted.
	Balance decimal.Decimal `json:"balance"`
}
