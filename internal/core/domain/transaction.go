package domain

import (
	"fmt"
	"time"
)

// TransactionType is the business event a Transaction records.
type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
	Transfer   TransactionType = "TRANSFER"
)

// TransactionStatus is fixed at creation; there are no later transitions.
type TransactionStatus string

const (
	Completed TransactionStatus = "COMPLETED"
)

// Default descriptions applied when the caller leaves Description empty.
const (
	DefaultDepositDescription    = "Cash Deposit"
	DefaultWithdrawalDescription = "Cash Withdrawal"
	DefaultTransferDescription   = "Internal Transfer"
)

// Transaction groups the ledger entries of one business event. It is written
// exactly once, atomically with its entries, and never mutated afterwards.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (UUID)
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	Description   string            `json:"description"`
	CreatedAt     time.Time         `json:"createdAt"`
	// Entries is populated on reads and receipts; it is not a column.
	Entries []LedgerEntry `json:"entries,omitempty"`
}

// ExpectedEntryCount returns how many entries a transaction of this type must have.
func (t TransactionType) ExpectedEntryCount() (int, error) {
	switch t {
	case Deposit, Withdrawal:
		return 1, nil
	case Transfer:
		return 2, nil
	default:
		return 0, fmt.Errorf("unknown transaction type %q", string(t))
	}
}

// DefaultDescription returns the description used when none is supplied.
func (t TransactionType) DefaultDescription() string {
	switch t {
	case Deposit:
		return DefaultDepositDescription
	case Withdrawal:
		return DefaultWithdrawalDescription
	case Transfer:
		return DefaultTransferDescription
	default:
		return ""
	}
}

// Validate checks the structural invariants of a transaction and its entries:
// entry count per type, positive amounts, and for transfers one DEBIT and one
// CREDIT of equal amount on distinct accounts.
func (t *Transaction) Validate() error {
	want, err := t.Type.ExpectedEntryCount()
	if err != nil {
		return err
	}
	if len(t.Entries) != want {
		return fmt.Errorf("%s transaction must have %d entries, got %d", t.Type, want, len(t.Entries))
	}
	for _, e := range t.Entries {
		if !e.Amount.IsPositive() {
			return fmt.Errorf("entry %s amount must be positive", e.EntryID)
		}
		if e.TransactionID != t.TransactionID {
			return fmt.Errorf("entry %s does not belong to transaction %s", e.EntryID, t.TransactionID)
		}
		if _, err := e.EntryType.Sign(); err != nil {
			return err
		}
	}

	switch t.Type {
	case Deposit:
		if t.Entries[0].EntryType != Credit {
			return fmt.Errorf("deposit entry must be a CREDIT")
		}
	case Withdrawal:
		if t.Entries[0].EntryType != Debit {
			return fmt.Errorf("withdrawal entry must be a DEBIT")
		}
	case Transfer:
		debit, credit := t.Entries[0], t.Entries[1]
		if debit.EntryType != Debit || credit.EntryType != Credit {
			return fmt.Errorf("transfer must be one DEBIT followed by one CREDIT")
		}
		if !debit.Amount.Equal(credit.Amount) {
			return fmt.Errorf("transfer legs differ: debit %s, credit %s", debit.Amount, credit.Amount)
		}
		if debit.AccountID == credit.AccountID {
			return fmt.Errorf("transfer legs must use distinct accounts")
		}
	}
	return nil
}
