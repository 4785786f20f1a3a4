package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// Entries are mapped separately.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		Type:          string(d.Type),
		Status:        string(d.Status),
		Description:   d.Description,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainTransaction converts a model Transaction and its entries to a domain Transaction
func ToDomainTransaction(m models.Transaction, entries []models.LedgerEntry) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		Type:          domain.TransactionType(m.Type),
		Status:        domain.TransactionStatus(m.Status),
		Description:   m.Description,
		CreatedAt:     m.CreatedAt,
		Entries:       ToDomainLedgerEntrySlice(entries),
	}
}

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:       d.EntryID,
		AccountID:     d.AccountID,
		TransactionID: d.TransactionID,
		EntryType:     string(d.EntryType),
		Amount:        d.Amount,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:       m.EntryID,
		AccountID:     m.AccountID,
		TransactionID: m.TransactionID,
		EntryType:     domain.EntryType(m.EntryType),
		Amount:        m.Amount,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainLedgerEntrySlice converts a slice of model entries; never returns nil.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
