// Package memory is an in-process ledger store. It keeps every row in maps
// guarded by one RWMutex and serializes gated writes through a
// locking.Manager.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/locking"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// Store holds accounts, transactions and entries. Entries are kept in
// append order; the per-account and per-transaction indexes point into it.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]domain.Account
	transactions map[string]domain.Transaction
	entries      []domain.LedgerEntry
	byAccount    map[string][]int
	byTxn        map[string][]int

	locks locking.Manager
}

// NewStore creates an empty store whose units of work take account holds
// through locks.
func NewStore(locks locking.Manager) *Store {
	return &Store{
		accounts:     make(map[string]domain.Account),
		transactions: make(map[string]domain.Transaction),
		byAccount:    make(map[string][]int),
		byTxn:        make(map[string][]int),
		locks:        locks,
	}
}

// NewRepositoryProvider exposes the store through every repository port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: store,
		LedgerRepo:  store,
		AuditRepo:   store,
	}
}

// --- accounts ---

func (s *Store) SaveAccount(ctx context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[account.AccountID]; exists {
		return fmt.Errorf("account %s: %w", account.AccountID, apperrors.ErrDuplicate)
	}
	account.Balance = decimal.Zero
	s.accounts[account.AccountID] = account
	return nil
}

func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findAccountLocked(accountID)
}

func (s *Store) findAccountLocked(accountID string) (*domain.Account, error) {
	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}
	return &acc, nil
}

// --- ledger reads ---

func (s *Store) SumEntries(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return accounting.SumByType(s.accountEntriesLocked(accountID))
}

func (s *Store) accountEntriesLocked(accountID string) []domain.LedgerEntry {
	idx := s.byAccount[accountID]
	out := make([]domain.LedgerEntry, len(idx))
	for i, n := range idx {
		out[i] = s.entries[n]
	}
	return out
}

// ListEntriesByAccountID returns entries newest first. Entries created at the
// same instant come back latest-written first.
func (s *Store) ListEntriesByAccountID(ctx context.Context, accountID string) ([]domain.LedgerEntry, error) {
	s.mu.RLock()
	idx := s.byAccount[accountID]
	out := make([]domain.LedgerEntry, 0, len(idx))
	for i := len(idx) - 1; i >= 0; i-- {
		out = append(out, s.entries[idx[i]])
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txn, ok := s.transactions[transactionID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))
	}
	idx := s.byTxn[transactionID]
	txn.Entries = make([]domain.LedgerEntry, len(idx))
	for i, n := range idx {
		txn.Entries[i] = s.entries[n]
	}
	return &txn, nil
}

// --- unit of work ---

// Begin opens a unit of work. Nothing is locked until LockAccount is called.
func (s *Store) Begin(ctx context.Context) (portsrepo.LedgerTx, error) {
	return &memoryTx{store: s, held: make(map[string]locking.Releaser)}, nil
}

// apply writes staged transactions after checking that every referenced
// account exists and no identifier is reused.
func (s *Store) apply(staged []domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	for _, txn := range staged {
		if _, dup := s.transactions[txn.TransactionID]; dup || seen[txn.TransactionID] {
			return fmt.Errorf("transaction %s: %w", txn.TransactionID, apperrors.ErrDuplicate)
		}
		seen[txn.TransactionID] = true
		for _, e := range txn.Entries {
			if _, ok := s.accounts[e.AccountID]; !ok {
				return apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", e.AccountID))
			}
		}
	}

	for _, txn := range staged {
		entries := txn.Entries
		txn.Entries = nil
		s.transactions[txn.TransactionID] = txn
		for _, e := range entries {
			n := len(s.entries)
			s.entries = append(s.entries, e)
			s.byAccount[e.AccountID] = append(s.byAccount[e.AccountID], n)
			s.byTxn[e.TransactionID] = append(s.byTxn[e.TransactionID], n)
		}
	}
	return nil
}

// --- audit ---

func (s *Store) SumAllEntries(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotReader{s}.SumAllEntries(ctx)
}

func (s *Store) CountOddEntryTransactions(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotReader{s}.CountOddEntryTransactions(ctx)
}

// Snapshot holds the read lock for the duration of fn.
func (s *Store) Snapshot(ctx context.Context, fn func(reader portsrepo.AuditReader) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(snapshotReader{s})
}

// snapshotReader reads without locking; callers hold s.mu.
type snapshotReader struct {
	s *Store
}

func (r snapshotReader) SumAllEntries(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	return accounting.SumByType(r.s.entries)
}

func (r snapshotReader) CountOddEntryTransactions(ctx context.Context) (int, error) {
	return accounting.CountOddEntryTransactions(r.s.entries), nil
}

var (
	_ portsrepo.AccountRepositoryFacade = (*Store)(nil)
	_ portsrepo.LedgerRepositoryFacade  = (*Store)(nil)
	_ portsrepo.AuditRepository         = (*Store)(nil)
)
