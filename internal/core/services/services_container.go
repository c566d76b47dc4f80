package services

import (
	portsrepo "github.com/SscSPs/crew_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crew_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// metrics may be nil.
func NewServiceContainer(repos portsrepo.RepositoryProvider, metrics *Metrics) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Ledger:     NewLedgerService(repos.AccountRepo, repos.TransactionRepo, metrics),
		Order:      NewOrderService(repos.OrderRepo, repos.ExpenseRepo, repos.BrigadeRepo),
		Settlement: NewSettlementService(repos, metrics),
		Brigade:    NewBrigadeService(repos.BrigadeRepo),
		Settings:   NewSettingsService(repos.SettingsRepo),
	}
}
