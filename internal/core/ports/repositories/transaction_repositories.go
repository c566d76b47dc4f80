package repositories

import (
	"context"

	"github.com/SscSPs/crew_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionReader defines read operations for ledger entries
type TransactionReader interface {
	// ListTransactions returns the newest entries first, labelled with account and user names.
	// accountID narrows the listing to one account when non-empty.
	ListTransactions(ctx context.Context, accountID string, limit int) ([]domain.TransactionView, error)
}

// TransactionWriter defines write operations for ledger entries.
// Every insert is paired with the matching balance update in the same database transaction.
type TransactionWriter interface {
	// SaveTransactions locks the affected accounts, applies their balance deltas and inserts the rows atomically.
	SaveTransactions(ctx context.Context, transactions []domain.Transaction) error

	// SaveTransactionsInTx does the same as SaveTransactions inside a caller-owned transaction.
	SaveTransactionsInTx(ctx context.Context, tx pgx.Tx, transactions []domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
