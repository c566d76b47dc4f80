package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/crew_ledger/internal/apperrors"
	"github.com/SscSPs/crew_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(base BaseRepository) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: base}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const sumExpensesQuery = `SELECT COALESCE(SUM(amount), 0) FROM object_expenses WHERE order_id = $1;`

// SaveObjectExpense appends an expense row while the order is still open.
// The order row is share-locked by the insert itself, so a settlement committing in between
// makes the insert find nothing: ErrPrecondition for a closed order, ErrNotFound for a missing one.
func (r *PgxExpenseRepository) SaveObjectExpense(ctx context.Context, expense domain.ObjectExpense) error {
	query := `
		INSERT INTO object_expenses (id, order_id, amount, category, comment, created_at)
		SELECT $1::uuid, o.id, $3::numeric, $4::text, $5::text, $6::timestamptz
		FROM orders o
		WHERE o.id = $2 AND o.status NOT IN ('done', 'cancel')
		FOR SHARE OF o;
	`
	cmdTag, err := r.Exec(ctx, query,
		expense.ExpenseID,
		expense.OrderID,
		expense.Amount,
		expense.Category,
		expense.Comment,
		expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense for order %s: %w", expense.OrderID, mapPgError(err))
	}
	if cmdTag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1);`, expense.OrderID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check order %s: %w", expense.OrderID, mapPgError(err))
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("%w: order %s is already closed", apperrors.ErrPrecondition, expense.OrderID)
}

// ListObjectExpenses lists an order's expenses oldest first.
func (r *PgxExpenseRepository) ListObjectExpenses(ctx context.Context, orderID string) ([]domain.ObjectExpense, error) {
	query := `
		SELECT id, order_id, amount, category, comment, created_at
		FROM object_expenses
		WHERE order_id = $1
		ORDER BY created_at, id;
	`
	rows, err := r.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses for order %s: %w", orderID, mapPgError(err))
	}
	defer rows.Close()

	expenses := []domain.ObjectExpense{}
	for rows.Next() {
		var e domain.ObjectExpense
		if err := rows.Scan(&e.ExpenseID, &e.OrderID, &e.Amount, &e.Category, &e.Comment, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", mapPgError(err))
	}
	return expenses, nil
}

func (r *PgxExpenseRepository) SumObjectExpenses(ctx context.Context, orderID string) (decimal.Decimal, error) {
	return sumExpenses(ctx, &r.BaseRepository, orderID)
}

func (r *PgxExpenseRepository) SumObjectExpensesInTx(ctx context.Context, tx pgx.Tx, orderID string) (decimal.Decimal, error) {
	return sumExpenses(ctx, tx, orderID)
}

func sumExpenses(ctx context.Context, db dbExecutor, orderID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := db.QueryRow(ctx, sumExpensesQuery, orderID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses for order %s: %w", orderID, mapPgError(err))
	}
	return total, nil
}
