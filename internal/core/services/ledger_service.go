package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/crew_ledger/internal/apperrors"
	"github.com/SscSPs/crew_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crew_ledger/internal/core/ports/services"
	"github.com/SscSPs/crew_ledger/internal/dto"
	"github.com/SscSPs/crew_ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

// ledgerService provides account and transaction operations.
type ledgerService struct {
	BaseService
	accountRepo     portsrepo.AccountRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryWithTx
	metrics         *Metrics
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(accountRepo portsrepo.AccountRepositoryFacade, transactionRepo portsrepo.TransactionRepositoryWithTx, metrics *Metrics) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService:     newBaseService(),
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		metrics:         metrics,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// ListAccounts returns the active accounts. Default accounts come from migrations, never from here.
func (s *ledgerService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx)
}

func (s *ledgerService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	if req.AccountType != domain.AccountCash && req.AccountType != domain.AccountBank {
		return nil, fmt.Errorf("%w: account type must be cash or bank, got %q", apperrors.ErrValidation, req.AccountType)
	}

	now := s.now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      req.OwnerUserID,
		Name:        name,
		AccountType: req.AccountType,
		IsActive:    true,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("created_by", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("type", string(account.AccountType)))
	return &account, nil
}

// RecordTransaction writes one entry and its balance delta as a single unit.
func (s *ledgerService) RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest, userID string) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(req.Amount); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if !req.TransactionType.IsValid() {
		return nil, fmt.Errorf("%w: transaction type must be income or expense", apperrors.ErrValidation)
	}
	if req.AccountID == "" {
		return nil, fmt.Errorf("%w: account is required", apperrors.ErrValidation)
	}

	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       req.AccountID,
		UserID:          userID,
		Amount:          req.Amount,
		TransactionType: req.TransactionType,
		Category:        strings.TrimSpace(req.Category),
		Comment:         req.Comment,
		OrderID:         req.OrderID,
		CreatedAt:       s.now(),
	}

	err := s.transactionRepo.SaveTransactions(ctx, []domain.Transaction{txn})
	s.metrics.observeLedgerWrite("transaction", err)
	if err != nil {
		s.LogError(ctx, err, "Failed to record transaction", slog.String("account_id", req.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", txn.AccountID),
		slog.String("signed_amount", txn.SignedAmount().String()))
	return &txn, nil
}

// Transfer books an expense on the source and an income on the destination in one database transaction.
func (s *ledgerService) Transfer(ctx context.Context, req dto.TransferRequest, userID string) ([]domain.Transaction, error) {
	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: cannot transfer to the same account", apperrors.ErrValidation)
	}
	if err := domain.ValidateAmount(req.Amount); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	transferID := uuid.NewString()
	now := s.now()
	legs := []domain.Transaction{
		{
			TransactionID:   uuid.NewString(),
			AccountID:       req.FromAccountID,
			UserID:          userID,
			Amount:          req.Amount,
			TransactionType: domain.Expense,
			Category:        domain.CategoryTransfer,
			Comment:         req.Comment,
			TransferID:      &transferID,
			CreatedAt:       now,
		},
		{
			TransactionID:   uuid.NewString(),
			AccountID:       req.ToAccountID,
			UserID:          userID,
			Amount:          req.Amount,
			TransactionType: domain.Income,
			Category:        domain.CategoryTransfer,
			Comment:         req.Comment,
			TransferID:      &transferID,
			CreatedAt:       now,
		},
	}
	if err := accounting.ValidateTransferLegs(legs); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	err := s.transactionRepo.SaveTransactions(ctx, legs)
	s.metrics.observeLedgerWrite("transfer", err)
	if err != nil {
		s.LogError(ctx, err, "Failed to transfer",
			slog.String("from_account_id", req.FromAccountID),
			slog.String("to_account_id", req.ToAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Transfer recorded",
		slog.String("transfer_id", transferID),
		slog.String("amount", req.Amount.String()))
	return legs, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.TransactionView, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = dto.DefaultTransactionListLimit
	}
	if limit > dto.MaxTransactionListLimit {
		limit = dto.MaxTransactionListLimit
	}
	return s.transactionRepo.ListTransactions(ctx, params.AccountID, limit)
}

// VerifyBalances reports every account and logs the ones whose balance drifted from the ledger.
func (s *ledgerService) VerifyBalances(ctx context.Context) ([]domain.AccountReconciliation, error) {
	report, err := s.accountRepo.ReconcileBalances(ctx)
	if err != nil {
		return nil, err
	}

	mismatches := 0
	for _, r := range report {
		if r.Balanced() {
			continue
		}
		mismatches++
		s.GetLogger(ctx).ErrorContext(ctx, "Account balance does not match ledger",
			slog.String("account_id", r.AccountID),
			slog.String("balance", r.Balance.String()),
			slog.String("ledger_balance", r.LedgerBalance.String()))
	}
	s.metrics.setBalanceMismatches(mismatches)
	return report, nil
}
