package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/crew_ledger/internal/apperrors"
	"github.com/SscSPs/crew_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crew_ledger/internal/core/ports/services"
	"github.com/google/uuid"
)

var (
	errNotSettleable       = fmt.Errorf("%w: order not found, unassigned, or not in progress", apperrors.ErrPrecondition)
	errNothingToDistribute = fmt.Errorf("%w: nothing to distribute", apperrors.ErrPrecondition)
)

// settlementService splits an order's net profit between its brigade and the owner.
type settlementService struct {
	BaseService
	orderRepo       portsrepo.OrderRepositoryWithTx
	expenseRepo     portsrepo.ExpenseRepositoryFacade
	accountRepo     portsrepo.AccountRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
	brigadeRepo     portsrepo.BrigadeRepositoryFacade
	metrics         *Metrics
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(repos portsrepo.RepositoryProvider, metrics *Metrics) portssvc.SettlementSvc {
	return &settlementService{
		BaseService:     newBaseService(),
		orderRepo:       repos.OrderRepo,
		expenseRepo:     repos.ExpenseRepo,
		accountRepo:     repos.AccountRepo,
		transactionRepo: repos.TransactionRepo,
		brigadeRepo:     repos.BrigadeRepo,
		metrics:         metrics,
	}
}

var _ portssvc.SettlementSvc = (*settlementService)(nil)

// Finalize runs the whole settlement inside one database transaction. Nothing is retried.
func (s *settlementService) Finalize(ctx context.Context, orderID string, ownerAccountID string, userID string) (*domain.FinancialSummary, error) {
	start := time.Now()
	summary, err := s.finalize(ctx, orderID, ownerAccountID, userID)
	s.metrics.observeSettlement(start, err)

	logger := s.GetLogger(ctx).With(slog.String("order_id", orderID))
	switch {
	case err == nil:
		logger.InfoContext(ctx, "Order settled",
			slog.String("net_profit", summary.NetProfit.String()),
			slog.String("crew_share", summary.CrewShare.String()),
			slog.String("owner_share", summary.OwnerShare.String()))
	case errors.Is(err, apperrors.ErrConsistency):
		logger.ErrorContext(ctx, "Settlement aborted on inconsistent data", slog.String("error", err.Error()))
	case errors.Is(err, apperrors.ErrPrecondition), errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrValidation):
		logger.WarnContext(ctx, "Settlement rejected", slog.String("error", err.Error()))
	default:
		logger.ErrorContext(ctx, "Settlement failed", slog.String("error", err.Error()))
	}
	return summary, err
}

func (s *settlementService) finalize(ctx context.Context, orderID string, ownerAccountID string, userID string) (*domain.FinancialSummary, error) {
	if ownerAccountID == "" {
		ownerAccountID = domain.DefaultCashAccountID
	}

	tx, err := s.orderRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.orderRepo.Rollback(ctx, tx)

	// 1. Lock the order together with its brigade terms
	order, err := s.orderRepo.FindOrderForSettlementInTx(ctx, tx, orderID)
	if err != nil {
		// A malformed id cannot name an order either.
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrValidation) {
			return nil, errNotSettleable
		}
		return nil, err
	}
	if !order.HasBrigade() || order.Status != domain.StatusWork {
		return nil, errNotSettleable
	}

	// 2-4. Expenses, net profit and the split
	expenses, err := s.expenseRepo.SumObjectExpensesInTx(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	split, err := domain.SplitProfit(order.TotalPrice, expenses, order.ProfitPercentage)
	if err != nil {
		if errors.Is(err, domain.ErrNothingToDistribute) {
			return nil, errNothingToDistribute
		}
		return nil, err
	}

	// 5. Lock both payee accounts
	if order.CrewAccountID == nil {
		return nil, fmt.Errorf("%w: brigade %s has no crew account", apperrors.ErrConsistency, *order.BrigadeID)
	}
	crewAccountID := *order.CrewAccountID
	if crewAccountID == ownerAccountID {
		return nil, fmt.Errorf("%w: owner share cannot be paid into the crew account", apperrors.ErrValidation)
	}
	if _, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{crewAccountID, ownerAccountID}); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrConsistency, err)
		}
		return nil, err
	}

	// 6. Credit both shares, then complete the order
	now := s.now()
	txns := settlementTransactions(order, split, crewAccountID, ownerAccountID, userID, now)
	if err := s.transactionRepo.SaveTransactionsInTx(ctx, tx, txns); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrConsistency, err)
		}
		return nil, err
	}

	summary := domain.FinancialSummary{
		TotalPrice:       order.TotalPrice,
		TotalExpenses:    expenses,
		NetProfit:        split.NetProfit,
		ProfitPercentage: order.ProfitPercentage,
		CrewShare:        split.CrewShare,
		OwnerShare:       split.OwnerShare,
		SettledAt:        now,
		SettledBy:        userID,
	}
	details := order.Details
	details.FinancialSummary = &summary
	if err := s.orderRepo.CompleteOrderInTx(ctx, tx, orderID, details, now); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &summary, nil
}

// settlementTransactions builds the income rows for both payees. Zero shares produce no row.
func settlementTransactions(order *domain.SettlementOrder, split domain.ProfitSplit, crewAccountID, ownerAccountID, userID string, now time.Time) []domain.Transaction {
	orderID := order.OrderID
	pct := order.ProfitPercentage.String()
	txns := make([]domain.Transaction, 0, 2)

	if split.CrewShare.IsPositive() {
		txns = append(txns, domain.Transaction{
			TransactionID:   uuid.NewString(),
			AccountID:       crewAccountID,
			UserID:          userID,
			Amount:          split.CrewShare,
			TransactionType: domain.Income,
			Category:        domain.CategoryProfitShare,
			Comment:         fmt.Sprintf("Order %s: crew share %s%%", orderID, pct),
			OrderID:         &orderID,
			CreatedAt:       now,
		})
	}
	if split.OwnerShare.IsPositive() {
		txns = append(txns, domain.Transaction{
			TransactionID:   uuid.NewString(),
			AccountID:       ownerAccountID,
			UserID:          userID,
			Amount:          split.OwnerShare,
			TransactionType: domain.Income,
			Category:        domain.CategoryOwnerProfit,
			Comment:         fmt.Sprintf("Order %s: owner share after crew %s%%", orderID, pct),
			OrderID:         &orderID,
			CreatedAt:       now,
		})
	}
	return txns
}

// PreviewSettlement computes what Finalize would pay out right now. Nothing is locked or written.
func (s *settlementService) PreviewSettlement(ctx context.Context, orderID string) (*domain.FinancialSummary, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrValidation) {
			return nil, errNotSettleable
		}
		return nil, err
	}
	if !order.HasBrigade() || order.Status != domain.StatusWork {
		return nil, errNotSettleable
	}

	brigade, err := s.brigadeRepo.FindBrigadeByID(ctx, *order.BrigadeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: order %s references missing brigade", apperrors.ErrConsistency, orderID)
		}
		return nil, err
	}

	expenses, err := s.expenseRepo.SumObjectExpenses(ctx, orderID)
	if err != nil {
		return nil, err
	}

	split, err := domain.SplitProfit(order.TotalPrice, expenses, brigade.ProfitPercentage)
	if err != nil {
		if errors.Is(err, domain.ErrNothingToDistribute) {
			return nil, errNothingToDistribute
		}
		return nil, err
	}

	return &domain.FinancialSummary{
		TotalPrice:       order.TotalPrice,
		TotalExpenses:    expenses,
		NetProfit:        split.NetProfit,
		ProfitPercentage: brigade.ProfitPercentage,
		CrewShare:        split.CrewShare,
		OwnerShare:       split.OwnerShare,
	}, nil
}
