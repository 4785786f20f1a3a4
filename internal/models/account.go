package models

import "time"

// Account is the persisted row of the accounts table. It has no balance
// column; balances are always derived from ledger_entries.
type Account struct {
	AccountID    string    `db:"account_id"`
	UserID       string    `db:"user_id"`
	AccountType  string    `db:"account_type"`
	CurrencyCode string    `db:"currency_code"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
}
