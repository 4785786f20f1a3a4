package services

import (
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The calculator is shared so reads and gated writes derive balances the same way
	container.Balance = NewBalanceCalculator()
	container.Account = NewAccountService(repos.AccountRepo, repos.LedgerRepo, container.Balance)
	container.Transaction = NewTransactionService(repos.LedgerRepo, container.Balance)
	container.Audit = NewAuditService(repos.AuditRepo)

	return container
}
