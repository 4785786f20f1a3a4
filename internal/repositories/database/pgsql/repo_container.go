package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every Postgres-backed repository onto dbPool.
func NewRepositoryProvider(dbPool DBPool, ledgerOpts ...LedgerOption) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(dbPool),
		LedgerRepo:  newPgxLedgerRepository(dbPool, ledgerOpts...),
		AuditRepo:   newAuditRepository(dbPool),
	}
}
