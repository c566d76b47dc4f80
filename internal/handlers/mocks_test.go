package handlers_test

import (
	"context"

	"github.com/SscSPs/crew_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/crew_ledger/internal/core/ports/services"
	"github.com/SscSPs/crew_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockLedgerService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) Transfer(ctx context.Context, req dto.TransferRequest, userID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.TransactionView, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionView), args.Error(1)
}

func (m *MockLedgerService) VerifyBalances(ctx context.Context) ([]domain.AccountReconciliation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountReconciliation), args.Error(1)
}

// --- Mock OrderService ---
type MockOrderService struct {
	mock.Mock
}

var _ portssvc.OrderSvcFacade = (*MockOrderService)(nil)

func (m *MockOrderService) order(args mock.Arguments) (*domain.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return m.order(m.Called(ctx, orderID))
}

func (m *MockOrderService) ListObjectExpenses(ctx context.Context, orderID string) ([]domain.ObjectExpense, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ObjectExpense), args.Error(1)
}

func (m *MockOrderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, userID string) (*domain.Order, error) {
	return m.order(m.Called(ctx, req, userID))
}

func (m *MockOrderService) ClaimOrder(ctx context.Context, orderID string, brigadeID string) (*domain.Order, error) {
	return m.order(m.Called(ctx, orderID, brigadeID))
}

func (m *MockOrderService) ClaimOrderForBrigadier(ctx context.Context, orderID string, userID string) (*domain.Order, error) {
	return m.order(m.Called(ctx, orderID, userID))
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID string, target domain.OrderStatus, userID string) (*domain.Order, error) {
	return m.order(m.Called(ctx, orderID, target, userID))
}

func (m *MockOrderService) AddObjectExpense(ctx context.Context, orderID string, req dto.CreateObjectExpenseRequest, userID string) (*domain.ObjectExpense, error) {
	args := m.Called(ctx, orderID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ObjectExpense), args.Error(1)
}

// --- Mock SettlementService ---
type MockSettlementService struct {
	mock.Mock
}

var _ portssvc.SettlementSvc = (*MockSettlementService)(nil)

func (m *MockSettlementService) Finalize(ctx context.Context, orderID string, ownerAccountID string, userID string) (*domain.FinancialSummary, error) {
	args := m.Called(ctx, orderID, ownerAccountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialSummary), args.Error(1)
}

func (m *MockSettlementService) PreviewSettlement(ctx context.Context, orderID string) (*domain.FinancialSummary, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialSummary), args.Error(1)
}

// --- Mock BrigadeService ---
type MockBrigadeService struct {
	mock.Mock
}

var _ portssvc.BrigadeSvcFacade = (*MockBrigadeService)(nil)

func (m *MockBrigadeService) CreateBrigade(ctx context.Context, req dto.CreateBrigadeRequest, userID string) (*domain.Brigade, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Brigade), args.Error(1)
}

func (m *MockBrigadeService) GetBrigade(ctx context.Context, brigadeID string) (*domain.Brigade, error) {
	args := m.Called(ctx, brigadeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Brigade), args.Error(1)
}

func (m *MockBrigadeService) GetBrigadeForBrigadier(ctx context.Context, userID string) (*domain.Brigade, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Brigade), args.Error(1)
}

func (m *MockBrigadeService) ListBrigades(ctx context.Context) ([]domain.Brigade, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Brigade), args.Error(1)
}

// --- Mock SettingsService ---
type MockSettingsService struct {
	mock.Mock
}

var _ portssvc.SettingsSvcFacade = (*MockSettingsService)(nil)

func (m *MockSettingsService) GetSetting(ctx context.Context, key string) (*domain.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}

func (m *MockSettingsService) SetSetting(ctx context.Context, key string, value string) (*domain.Setting, error) {
	args := m.Called(ctx, key, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}

func (m *MockSettingsService) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Setting), args.Error(1)
}
