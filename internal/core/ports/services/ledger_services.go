package services

import (
	"context"

	"github.com/SscSPs/crew_ledger/internal/core/domain"
	"github.com/SscSPs/crew_ledger/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount retrieves a specific account by its unique identifier.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all active accounts ordered by type and name.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new cash or bank account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
}

// LedgerWriterSvc defines balance-moving operations
type LedgerWriterSvc interface {
	// RecordTransaction inserts one entry and applies its signed amount to the account balance atomically.
	RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest, userID string) (*domain.Transaction, error)

	// Transfer moves money between two accounts as an expense/income pair sharing one transfer id.
	Transfer(ctx context.Context, req dto.TransferRequest, userID string) ([]domain.Transaction, error)
}

// LedgerReaderSvc defines read operations on ledger entries
type LedgerReaderSvc interface {
	// ListTransactions returns the newest entries first.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.TransactionView, error)

	// VerifyBalances reports each account's stored balance against the sum of its entries.
	VerifyBalances(ctx context.Context) ([]domain.AccountReconciliation, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	LedgerWriterSvc
	LedgerReaderSvc
}
