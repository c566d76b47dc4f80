package services

import (
	"context"

	"github.com/SscSPs/crew_ledger/internal/core/domain"
	"github.com/SscSPs/crew_ledger/internal/dto"
)

// OrderReaderSvc defines read operations for orders
type OrderReaderSvc interface {
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListObjectExpenses(ctx context.Context, orderID string) ([]domain.ObjectExpense, error)
}

// OrderWriterSvc defines the order status machine and expense booking
type OrderWriterSvc interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, userID string) (*domain.Order, error)

	// ClaimOrder assigns a new, unassigned order to an active brigade and starts work.
	ClaimOrder(ctx context.Context, orderID string, brigadeID string) (*domain.Order, error)

	// ClaimOrderForBrigadier claims on behalf of the brigade the user leads.
	ClaimOrderForBrigadier(ctx context.Context, orderID string, userID string) (*domain.Order, error)

	// UpdateStatus performs a direct status write. Completion is only reachable through settlement.
	UpdateStatus(ctx context.Context, orderID string, target domain.OrderStatus, userID string) (*domain.Order, error)

	AddObjectExpense(ctx context.Context, orderID string, req dto.CreateObjectExpenseRequest, userID string) (*domain.ObjectExpense, error)
}

// OrderSvcFacade combines all order-related service interfaces
type OrderSvcFacade interface {
	OrderReaderSvc
	OrderWriterSvc
}
