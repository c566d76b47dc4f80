package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	TransactionRepo TransactionRepositoryWithTx
	OrderRepo       OrderRepositoryWithTx
	ExpenseRepo     ExpenseRepositoryFacade
	BrigadeRepo     BrigadeRepositoryFacade
	SettingsRepo    SettingsRepositoryFacade
}
