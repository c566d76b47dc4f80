package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/crew_ledger/internal/apperrors"
	"github.com/SscSPs/crew_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/crew_ledger/internal/models"
	"github.com/SscSPs/crew_ledger/internal/utils/accounting"
	"github.com/SscSPs/crew_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxTransactionRepository creates a new repository for ledger entries.
func newPgxTransactionRepository(base BaseRepository, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: base,
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

// SaveTransactions inserts the rows and their balance deltas as one database transaction.
func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, transactions []domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.SaveTransactionsInTx(ctx, tx, transactions); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveTransactionsInTx locks every touched account, applies the balance deltas and inserts the rows.
func (r *PgxTransactionRepository) SaveTransactionsInTx(ctx context.Context, tx pgx.Tx, transactions []domain.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	balanceChanges, err := accounting.BalanceChanges(transactions)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID := range balanceChanges {
		accountIDs = append(accountIDs, accountID)
	}

	// 1. Lock accounts; ErrNotFound if any is missing
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return err
	}

	// 2. Apply balance deltas
	now := transactions[0].CreatedAt
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, now); err != nil {
		return err
	}

	// 3. Insert the ledger rows
	query := `
		INSERT INTO transactions (id, account_id, user_id, amount, type, category, comment, order_id, transfer_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, txn := range transactions {
		m := mapping.ToModelTransaction(txn)
		batch.Queue(query,
			m.TransactionID,
			m.AccountID,
			m.UserID,
			m.Amount,
			m.TransactionType,
			m.Category,
			m.Comment,
			m.OrderID,
			m.TransferID,
			m.CreatedAt,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert %d transactions: %w", len(transactions), mapPgError(err))
	}
	return nil
}

// ListTransactions returns entries newest first, joined with account and user names.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, accountID string, limit int) ([]domain.TransactionView, error) {
	query := `
		SELECT t.id, t.account_id, t.user_id, t.amount, t.type, t.category, t.comment, t.order_id, t.transfer_id, t.created_at,
		       a.name, COALESCE(u.name, '')
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		LEFT JOIN users u ON u.id = t.user_id
		WHERE ($1 = '' OR t.account_id::text = $1)
		ORDER BY t.created_at DESC, t.id
		LIMIT $2;
	`
	rows, err := r.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", mapPgError(err))
	}
	defer rows.Close()

	views := []domain.TransactionView{}
	for rows.Next() {
		var m models.Transaction
		var view domain.TransactionView
		err := rows.Scan(
			&m.TransactionID,
			&m.AccountID,
			&m.UserID,
			&m.Amount,
			&m.TransactionType,
			&m.Category,
			&m.Comment,
			&m.OrderID,
			&m.TransferID,
			&m.CreatedAt,
			&view.AccountName,
			&view.UserName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		view.Transaction = mapping.ToDomainTransaction(m)
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", mapPgError(err))
	}
	return views, nil
}
