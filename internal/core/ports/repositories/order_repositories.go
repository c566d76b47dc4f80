package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/crew_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// OrderReader defines read operations for order data
type OrderReader interface {
	// FindOrderByID retrieves an order by its ID.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
}

// OrderWriter defines write operations for order data
type OrderWriter interface {
	// SaveOrder persists a new order.
	SaveOrder(ctx context.Context, order domain.Order) error

	// ClaimOrder moves an unassigned new order to work for the given brigade.
	// Returns ErrConflict when the order is no longer claimable.
	ClaimOrder(ctx context.Context, orderID string, brigadeID string, now time.Time) error

	// UpdateOrderStatus writes target only if the order is still in status from.
	// Returns ErrConflict when the status changed underneath.
	UpdateOrderStatus(ctx context.Context, orderID string, from domain.OrderStatus, to domain.OrderStatus, now time.Time) error
}

// OrderSettlementSupport defines the operations the settlement unit runs inside one transaction
type OrderSettlementSupport interface {
	// FindOrderForSettlementInTx locks the order row and loads its brigade terms.
	FindOrderForSettlementInTx(ctx context.Context, tx pgx.Tx, orderID string) (*domain.SettlementOrder, error)

	// CompleteOrderInTx sets status done and stores the details, guarded on status still being work.
	CompleteOrderInTx(ctx context.Context, tx pgx.Tx, orderID string, details domain.OrderDetails, now time.Time) error
}

// OrderRepositoryFacade combines all order-related repository interfaces
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
	OrderSettlementSupport
}

// OrderRepositoryWithTx extends OrderRepositoryFacade with transaction capabilities
type OrderRepositoryWithTx interface {
	OrderRepositoryFacade
	TransactionManager
}

// ExpenseRepositoryFacade defines operations on object expenses
type ExpenseRepositoryFacade interface {
	// SaveObjectExpense appends an expense to an order that is not done or cancelled.
	// Returns ErrPrecondition when the order closed before the insert, ErrNotFound when it does not exist.
	SaveObjectExpense(ctx context.Context, expense domain.ObjectExpense) error

	// ListObjectExpenses lists an order's expenses oldest first.
	ListObjectExpenses(ctx context.Context, orderID string) ([]domain.ObjectExpense, error)

	// SumObjectExpenses totals an order's expenses.
	SumObjectExpenses(ctx context.Context, orderID string) (decimal.Decimal, error)

	// SumObjectExpensesInTx totals an order's expenses within a given transaction.
	SumObjectExpensesInTx(ctx context.Context, tx pgx.Tx, orderID string) (decimal.Decimal, error)
}
