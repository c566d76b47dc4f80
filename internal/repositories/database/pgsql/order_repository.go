package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/crew_ledger/internal/apperrors"
	"github.com/SscSPs/crew_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/crew_ledger/internal/models"
	"github.com/SscSPs/crew_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PgxOrderRepository struct {
	BaseRepository
}

// newPgxOrderRepository creates a new repository for orders.
func newPgxOrderRepository(base BaseRepository) portsrepo.OrderRepositoryWithTx {
	return &PgxOrderRepository{BaseRepository: base}
}

var _ portsrepo.OrderRepositoryWithTx = (*PgxOrderRepository)(nil)

// SaveOrder persists a new order with its encoded details.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	m, err := mapping.ToModelOrder(order)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	query := `
		INSERT INTO orders (id, user_id, brigade_id, status, total_price, details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = r.Exec(ctx, query,
		m.OrderID,
		m.UserID,
		m.BrigadeID,
		m.Status,
		m.TotalPrice,
		m.Details,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save order %s: %w", m.OrderID, mapPgError(err))
	}
	return nil
}

// FindOrderByID retrieves an order by its ID.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `
		SELECT id, user_id, brigade_id, status, total_price, details, created_at, updated_at
		FROM orders
		WHERE id = $1;
	`
	var m models.Order
	err := r.QueryRow(ctx, query, orderID).Scan(
		&m.OrderID,
		&m.UserID,
		&m.BrigadeID,
		&m.Status,
		&m.TotalPrice,
		&m.Details,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, mapPgError(err))
	}

	order, err := mapping.ToDomainOrder(m)
	if err != nil {
		return nil, fmt.Errorf("order %s has unreadable details: %w", orderID, err)
	}
	return &order, nil
}

// ClaimOrder assigns the brigade only while the order is still new and unassigned.
func (r *PgxOrderRepository) ClaimOrder(ctx context.Context, orderID string, brigadeID string, now time.Time) error {
	query := `
		UPDATE orders
		SET status = 'work', brigade_id = $2, updated_at = $3
		WHERE id = $1 AND status = 'new' AND brigade_id IS NULL;
	`
	cmdTag, err := r.Exec(ctx, query, orderID, brigadeID, now)
	if err != nil {
		return fmt.Errorf("failed to claim order %s: %w", orderID, mapPgError(err))
	}

	if cmdTag.RowsAffected() == 0 {
		// Distinguish a missing order from one somebody else already took.
		if _, findErr := r.FindOrderByID(ctx, orderID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: order already claimed", apperrors.ErrConflict)
	}
	return nil
}

// UpdateOrderStatus writes the new status guarded on the status the caller observed.
func (r *PgxOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, from domain.OrderStatus, to domain.OrderStatus, now time.Time) error {
	query := `
		UPDATE orders
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2;
	`
	cmdTag, err := r.Exec(ctx, query, orderID, string(from), string(to), now)
	if err != nil {
		return fmt.Errorf("failed to update status of order %s: %w", orderID, mapPgError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %s is no longer %s", apperrors.ErrConflict, orderID, from)
	}
	return nil
}

// FindOrderForSettlementInTx locks the order row and loads its brigade terms and crew account.
// Returns ErrNotFound when the order does not exist.
func (r *PgxOrderRepository) FindOrderForSettlementInTx(ctx context.Context, tx pgx.Tx, orderID string) (*domain.SettlementOrder, error) {
	query := `
		SELECT o.id, o.user_id, o.brigade_id, o.status, o.total_price, o.details, o.created_at, o.updated_at,
		       b.profit_percentage, b.brigadier_id, a.id
		FROM orders o
		LEFT JOIN brigades b ON b.id = o.brigade_id
		LEFT JOIN accounts a ON a.brigade_id = b.id AND a.type = 'crew'
		WHERE o.id = $1
		FOR UPDATE OF o;
	`
	var m models.Order
	var pct decimal.NullDecimal
	var brigadierID, crewAccountID *string
	err := tx.QueryRow(ctx, query, orderID).Scan(
		&m.OrderID,
		&m.UserID,
		&m.BrigadeID,
		&m.Status,
		&m.TotalPrice,
		&m.Details,
		&m.CreatedAt,
		&m.UpdatedAt,
		&pct,
		&brigadierID,
		&crewAccountID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock order %s: %w", orderID, mapPgError(err))
	}

	order, err := mapping.ToDomainOrder(m)
	if err != nil {
		return nil, fmt.Errorf("order %s has unreadable details: %w", orderID, err)
	}

	so := &domain.SettlementOrder{Order: order, CrewAccountID: crewAccountID}
	if pct.Valid {
		so.ProfitPercentage = pct.Decimal
	}
	if brigadierID != nil {
		so.BrigadierID = *brigadierID
	}
	return so, nil
}

// CompleteOrderInTx marks the order done. Exactly one row must change, otherwise ErrConflict.
func (r *PgxOrderRepository) CompleteOrderInTx(ctx context.Context, tx pgx.Tx, orderID string, details domain.OrderDetails, now time.Time) error {
	raw, err := mapping.EncodeOrderDetails(details)
	if err != nil {
		return fmt.Errorf("failed to encode details for order %s: %w", orderID, err)
	}

	query := `
		UPDATE orders
		SET status = 'done', details = $2, updated_at = $3
		WHERE id = $1 AND status = 'work';
	`
	cmdTag, err := tx.Exec(ctx, query, orderID, raw, now)
	if err != nil {
		return fmt.Errorf("failed to complete order %s: %w", orderID, mapPgError(err))
	}
	if cmdTag.RowsAffected() != 1 {
		return fmt.Errorf("%w: order %s changed during settlement", apperrors.ErrConflict, orderID)
	}
	return nil
}
