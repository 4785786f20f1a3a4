package accounting

import (
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount applies the entry direction to its amount.
// CREDIT adds to the account balance, DEBIT subtracts from it.
// This is used in both services and repositories to ensure consistent accounting logic.
func CalculateSignedAmount(entry domain.LedgerEntry) (decimal.Decimal, error) {
	sign, err := entry.EntryType.Sign()
	if err != nil {
		return decimal.Zero, fmt.Errorf("entry %s: %w", entry.EntryID, err)
	}
	if sign < 0 {
		return entry.Amount.Neg(), nil
	}
	return entry.Amount, nil
}

// SumByType totals the CREDIT and DEBIT amounts of entries separately.
func SumByType(entries []domain.LedgerEntry) (credits decimal.Decimal, debits decimal.Decimal, err error) {
	credits, debits = decimal.Zero, decimal.Zero
	for _, e := range entries {
		switch e.EntryType {
		case domain.Credit:
			credits = credits.Add(e.Amount)
		case domain.Debit:
			debits = debits.Add(e.Amount)
		default:
			return decimal.Zero, decimal.Zero, fmt.Errorf("unknown entry type '%s' for entry %s", e.EntryType, e.EntryID)
		}
	}
	return credits, debits, nil
}

// NetBalance is the balance implied by a pair of credit and debit totals.
func NetBalance(credits, debits decimal.Decimal) decimal.Decimal {
	return credits.Sub(debits)
}

// SignedSum returns credits minus debits over entries.
func SignedSum(entries []domain.LedgerEntry) (decimal.Decimal, error) {
	credits, debits, err := SumByType(entries)
	if err != nil {
		return decimal.Zero, err
	}
	return NetBalance(credits, debits), nil
}

// CountOddEntryTransactions counts transactions that own an odd number of entries.
func CountOddEntryTransactions(entries []domain.LedgerEntry) int {
	perTxn := make(map[string]int)
	for _, e := range entries {
		perTxn[e.TransactionID]++
	}
	odd := 0
	for _, n := range perTxn {
		if n%2 != 0 {
			odd++
		}
	}
	return odd
}
