package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/crew_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds every repository over one pool.
// acquireTimeout bounds connection acquisition for multi-statement transactions.
func NewRepositoryProvider(dbPool *pgxpool.Pool, acquireTimeout time.Duration) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool, AcquireTimeout: acquireTimeout}

	accountRepo := newPgxAccountRepository(base)
	transactionRepo := newPgxTransactionRepository(base, accountRepo)
	orderRepo := newPgxOrderRepository(base)
	expenseRepo := newPgxExpenseRepository(base)
	brigadeRepo := newPgxBrigadeRepository(base, accountRepo)
	settingsRepo := newPgxSettingsRepository(base)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
		OrderRepo:       orderRepo,
		ExpenseRepo:     expenseRepo,
		BrigadeRepo:     brigadeRepo,
		SettingsRepo:    settingsRepo,
	}
}
