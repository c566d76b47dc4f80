package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/crew_ledger/internal/apperrors"
	"github.com/SscSPs/crew_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crew_ledger/internal/core/ports/services"
	"github.com/SscSPs/crew_ledger/internal/dto"
	"github.com/google/uuid"
)

// orderService drives the order status machine outside of settlement.
type orderService struct {
	BaseService
	orderRepo   portsrepo.OrderRepositoryFacade
	expenseRepo portsrepo.ExpenseRepositoryFacade
	brigadeRepo portsrepo.BrigadeRepositoryFacade
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo portsrepo.OrderRepositoryFacade, expenseRepo portsrepo.ExpenseRepositoryFacade, brigadeRepo portsrepo.BrigadeRepositoryFacade) portssvc.OrderSvcFacade {
	return &orderService{
		BaseService: newBaseService(),
		orderRepo:   orderRepo,
		expenseRepo: expenseRepo,
		brigadeRepo: brigadeRepo,
	}
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, userID string) (*domain.Order, error) {
	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		return nil, fmt.Errorf("%w: customer is required", apperrors.ErrValidation)
	}

	total := req.TotalPrice
	if total.IsZero() && req.BillOfMaterials != nil {
		total = req.BillOfMaterials.Total()
	}
	if total.IsNegative() {
		return nil, fmt.Errorf("%w: total price cannot be negative", apperrors.ErrValidation)
	}
	if !total.IsZero() {
		if err := domain.ValidateAmount(total); err != nil {
			return nil, fmt.Errorf("%w: total price: %v", apperrors.ErrValidation, err)
		}
	}

	now := s.now()
	order := domain.Order{
		OrderID:     uuid.NewString(),
		UserID:      customerID,
		Status:      domain.StatusNew,
		TotalPrice:  total,
		Details:     domain.OrderDetails{BillOfMaterials: req.BillOfMaterials},
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.orderRepo.SaveOrder(ctx, order); err != nil {
		s.LogError(ctx, err, "Failed to save order", slog.String("created_by", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Order created", slog.String("order_id", order.OrderID), slog.String("total_price", total.String()))
	return &order, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orderRepo.FindOrderByID(ctx, orderID)
}

// ClaimOrder hands a new order to an active brigade. Only one concurrent claim can win.
func (s *orderService) ClaimOrder(ctx context.Context, orderID string, brigadeID string) (*domain.Order, error) {
	brigade, err := s.brigadeRepo.FindBrigadeByID(ctx, brigadeID)
	if err != nil {
		return nil, err
	}
	if !brigade.IsActive {
		return nil, fmt.Errorf("%w: brigade %s is not active", apperrors.ErrPrecondition, brigadeID)
	}

	if err := s.orderRepo.ClaimOrder(ctx, orderID, brigadeID, s.now()); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.GetLogger(ctx).WarnContext(ctx, "Order claim lost", slog.String("order_id", orderID), slog.String("brigade_id", brigadeID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Order claimed", slog.String("order_id", orderID), slog.String("brigade_id", brigadeID))
	return s.orderRepo.FindOrderByID(ctx, orderID)
}

func (s *orderService) ClaimOrderForBrigadier(ctx context.Context, orderID string, userID string) (*domain.Order, error) {
	brigade, err := s.brigadeRepo.FindBrigadeByBrigadier(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s does not lead an active brigade", apperrors.ErrNotFound, userID)
		}
		return nil, err
	}
	return s.ClaimOrder(ctx, orderID, brigade.BrigadeID)
}

// UpdateStatus applies a direct transition guarded on the status observed here.
func (s *orderService) UpdateStatus(ctx context.Context, orderID string, target domain.OrderStatus, userID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateDirectTransition(order.Status, order.HasBrigade(), target); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownStatus):
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		case errors.Is(err, domain.ErrDoneViaSettlementOnly):
			return nil, fmt.Errorf("%w: use settlement to complete an order", apperrors.ErrPrecondition)
		default:
			return nil, fmt.Errorf("%w: %v", apperrors.ErrPrecondition, err)
		}
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, order.Status, target, s.now()); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Order status changed",
		slog.String("order_id", orderID),
		slog.String("from", string(order.Status)),
		slog.String("to", string(target)),
		slog.String("changed_by", userID))
	return s.orderRepo.FindOrderByID(ctx, orderID)
}

// AddObjectExpense books a cost against an order that is still open.
func (s *orderService) AddObjectExpense(ctx context.Context, orderID string, req dto.CreateObjectExpenseRequest, userID string) (*domain.ObjectExpense, error) {
	if err := domain.ValidateAmount(req.Amount); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: order is %s", apperrors.ErrPrecondition, order.Status)
	}

	expense := domain.ObjectExpense{
		ExpenseID: uuid.NewString(),
		OrderID:   orderID,
		Amount:    req.Amount,
		Category:  strings.TrimSpace(req.Category),
		Comment:   req.Comment,
		CreatedAt: s.now(),
	}
	if err := s.expenseRepo.SaveObjectExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save object expense", slog.String("order_id", orderID))
		return nil, err
	}

	s.LogInfo(ctx, "Object expense added",
		slog.String("order_id", orderID),
		slog.String("amount", req.Amount.String()),
		slog.String("added_by", userID))
	return &expense, nil
}

func (s *orderService) ListObjectExpenses(ctx context.Context, orderID string) ([]domain.ObjectExpense, error) {
	if _, err := s.orderRepo.FindOrderByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.expenseRepo.ListObjectExpenses(ctx, orderID)
}
