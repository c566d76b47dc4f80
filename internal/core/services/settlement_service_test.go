package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/SscSPs/crew_ledger/internal/apperrors"
	"github.com/SscSPs/crew_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crew_ledger/internal/core/ports/services"
	"github.com/SscSPs/crew_ledger/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type SettlementServiceTestSuite struct {
	suite.Suite
	orderRepo   *MockOrderRepository
	expenseRepo *MockExpenseRepository
	accountRepo *MockAccountRepository
	txnRepo     *MockTransactionRepository
	brigadeRepo *MockBrigadeRepository
	service     portssvc.SettlementSvc

	ctx           context.Context
	tx            *fakeTx
	orderID       string
	brigadeID     string
	crewAccountID string
	userID        string
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.orderRepo = new(MockOrderRepository)
	suite.expenseRepo = new(MockExpenseRepository)
	suite.accountRepo = new(MockAccountRepository)
	suite.txnRepo = new(MockTransactionRepository)
	suite.brigadeRepo = new(MockBrigadeRepository)
	suite.service = services.NewSettlementService(portsrepo.RepositoryProvider{
		OrderRepo:       suite.orderRepo,
		ExpenseRepo:     suite.expenseRepo,
		AccountRepo:     suite.accountRepo,
		TransactionRepo: suite.txnRepo,
		BrigadeRepo:     suite.brigadeRepo,
	}, nil)

	suite.ctx = context.Background()
	suite.tx = &fakeTx{}
	suite.orderID = uuid.NewString()
	suite.brigadeID = uuid.NewString()
	suite.crewAccountID = uuid.NewString()
	suite.userID = "owner-1"
}

func (suite *SettlementServiceTestSuite) workOrder(total, pct string) *domain.SettlementOrder {
	brigadeID := suite.brigadeID
	crewAccountID := suite.crewAccountID
	return &domain.SettlementOrder{
		Order: domain.Order{
			OrderID:    suite.orderID,
			UserID:     "customer-1",
			BrigadeID:  &brigadeID,
			Status:     domain.StatusWork,
			TotalPrice: dec(total),
			Details: domain.OrderDetails{
				BillOfMaterials: &domain.BillOfMaterials{Items: []domain.MaterialItem{{Name: "tile", Unit: "m2", Quantity: dec("10"), UnitPrice: dec("5")}}},
			},
		},
		ProfitPercentage: dec(pct),
		BrigadierID:      "brigadier-1",
		CrewAccountID:    &crewAccountID,
	}
}

func (suite *SettlementServiceTestSuite) expectBeginRollback() {
	suite.orderRepo.On("Begin", suite.ctx).Return(suite.tx, nil).Once()
	suite.orderRepo.On("Rollback", suite.ctx, suite.tx).Return(nil).Once()
}

func (suite *SettlementServiceTestSuite) expectLockAccounts(ownerAccountID string) {
	locked := map[string]domain.Account{
		suite.crewAccountID: {AccountID: suite.crewAccountID, AccountType: domain.AccountCrew},
		ownerAccountID:      {AccountID: ownerAccountID, AccountType: domain.AccountCash},
	}
	suite.accountRepo.On("FindAccountsByIDsForUpdate", suite.ctx, suite.tx, []string{suite.crewAccountID, ownerAccountID}).Return(locked, nil).Once()
}

func (suite *SettlementServiceTestSuite) assertNoWrites() {
	suite.txnRepo.AssertNotCalled(suite.T(), "SaveTransactionsInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.orderRepo.AssertNotCalled(suite.T(), "CompleteOrderInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.orderRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestFinalize_Success() {
	ownerAccountID := uuid.NewString()
	suite.expectBeginRollback()
	suite.orderRepo.On("FindOrderForSettlementInTx", suite.ctx, suite.tx, suite.orderID).Return(suite.workOrder("100000", "40"), nil).Once()
	suite.expenseRepo.On("SumObjectExpensesInTx", suite.ctx, suite.tx, suite.orderID).Return(dec("20000"), nil).Once()
	suite.expectLockAccounts(ownerAccountID)

	var saved []domain.Transaction
	suite.txnRepo.On("SaveTransactionsInTx", suite.ctx, suite.tx, mock.AnythingOfType("[]domain.Transaction")).
		Run(func(args mock.Arguments) { saved = args.Get(2).([]domain.Transaction) }).
		Return(nil).Once()

	var stored domain.OrderDetails
	suite.orderRepo.On("CompleteOrderInTx", suite.ctx, suite.tx, suite.orderID, mock.AnythingOfType("domain.OrderDetails"), mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(3).(domain.OrderDetails) }).
		Return(nil).Once()
	suite.orderRepo.On("Commit", suite.ctx, suite.tx).Return(nil).Once()

	summary, err := suite.service.Finalize(suite.ctx, suite.orderID, ownerAccountID, suite.userID)

	suite.Require().NoError(err)
	suite.True(dec("80000").Equal(summary.NetProfit))
	suite.True(dec("32000").Equal(summary.CrewShare))
	suite.True(dec("48000").Equal(summary.OwnerShare))
	suite.Equal(suite.userID, summary.SettledBy)

	suite.Require().Len(saved, 2)
	suite.Equal(suite.crewAccountID, saved[0].AccountID)
	suite.Equal(domain.Income, saved[0].TransactionType)
	suite.Equal(domain.CategoryProfitShare, saved[0].Category)
	suite.True(dec("32000").Equal(saved[0].Amount))
	suite.Contains(saved[0].Comment, suite.orderID)
	suite.Contains(saved[0].Comment, "40%")
	suite.Equal(ownerAccountID, saved[1].AccountID)
	suite.True(dec("48000").Equal(saved[1].Amount))
	suite.Equal(suite.orderID, *saved[1].OrderID)

	suite.Require().NotNil(stored.FinancialSummary)
	suite.True(dec("32000").Equal(stored.FinancialSummary.CrewShare))
	suite.NotNil(stored.BillOfMaterials, "existing details must be preserved")

	suite.orderRepo.AssertExpectations(suite.T())
	suite.expenseRepo.AssertExpectations(suite.T())
	suite.accountRepo.AssertExpectations(suite.T())
	suite.txnRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestFinalize_DefaultsOwnerAccountToCash() {
	suite.expectBeginRollback()
	suite.orderRepo.On("FindOrderForSettlementInTx", suite.ctx, suite.tx, suite.orderID).Return(suite.workOrder("1000", "50"), nil).Once()
	suite.expenseRepo.On("SumObjectExpensesInTx", suite.ctx, suite.tx, suite.orderID).Return(decimal.Zero, nil).Once()
	suite.expectLockAccounts(domain.DefaultCashAccountID)
	suite.txnRepo.On("SaveTransactionsInTx", suite.ctx, suite.tx, mock.Anything).Return(nil).Once()
	suite.orderRepo.On("CompleteOrderInTx", suite.ctx, suite.tx, suite.orderID, mock.Anything, mock.Anything).Return(nil).Once()
	suite.orderRepo.On("Commit", suite.ctx, suite.tx).Return(nil).Once()

	_, err := suite.service.Finalize(suite.ctx, suite.orderID, "", suite.userID)

	suite.Require().NoError(err)
	suite.accountRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestFinalize_ZeroPercentSkipsCrewRow() {
	ownerAccountID := uuid.NewString()
	suite.expectBeginRollback()
	suite.orderRepo.On("FindOrderForSettlementInTx", suite.ctx, suite.tx, suite.orderID).Return(suite.workOrder("500", "0"), nil).Once()
	suite.expenseRepo.On("SumObjectExpensesInTx", suite.ctx, suite.tx, suite.orderID).Return(dec("100"), nil).Once()
	suite.expectLockAccounts(ownerAccountID)

	var saved []domain.Transaction
	suite.txnRepo.On("SaveTransactionsInTx", suite.ctx, suite.tx, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(2).([]domain.Transaction) }).
		Return(nil).Once()
	suite.orderRepo.On("CompleteOrderInTx", suite.ctx, suite.tx, suite.orderID, mock.Anything, mock.Anything).Return(nil).Once()
	suite.orderRepo.On("Commit", suite.ctx, suite.tx).Return(nil).Once()

	summary, err := suite.service.Finalize(suite.ctx, suite.orderID, ownerAccountID, suite.userID)

	suite.Require().NoError(err)
	suite.True(summary.CrewShare.IsZero())
	suite.Require().Len(saved, 1)
	suite.Equal(ownerAccountID, saved[0].AccountID)
	suite.True(dec("400").Equal(saved[0].Amount))
}

func (suite *SettlementServiceTestSuite) TestFinalize_RejectsUnsettleableOrders() {
	unassigned := suite.workOrder("100", "10")
	unassigned.BrigadeID = nil

	done := suite.workOrder("100", "10")
	done.Status = domain.StatusDone

	processing := suite.workOrder("100", "10")
	processing.Status = domain.StatusProcessing

	cases := map[string]struct {
		order *domain.SettlementOrder
		err   error
	}{
		"missing":         {nil, apperrors.ErrNotFound},
		"malformed id":    {nil, fmt.Errorf("%w: malformed identifier", apperrors.ErrValidation)},
		"unassigned":      {unassigned, nil},
		"already settled": {done, nil},
		"not yet in work": {processing, nil},
	}

	for name, tc := range cases {
		suite.Run(name, func() {
			suite.SetupTest()
			suite.expectBeginRollback()
			if tc.order == nil {
				suite.orderRepo.On("FindOrderForSettlementInTx", suite.ctx, suite.tx, suite.orderID).Return(nil, tc.err).Once()
			} else {
				suite.orderRepo.On("FindOrderForSettlementInTx", suite.ctx, suite.tx, suite.orderID).Return(tc.order, nil).Once()
			}

			_, err := suite.service.Finalize(suite.ctx, suite.orderID, "", suite.userID)

			suite.Require().ErrorIs(err, apperrors.ErrPrecondition)
			suite.Contains(err.Error(), "order not found, unassigned, or not in progress")
			suite.expenseRepo.AssertNotCalled(suite.T(), "SumObjectExpensesInTx", mock.Anything, mock.Anything, mock.Anything)
			suite.assertNoWrites()
			suite.orderRepo.AssertExpectations(suite.T())
		})
	}
}

func (suite *SettlementServiceTestSuite) TestFinalize_SecondCallIsRejectedWithoutWrites() {
	settled := suite.workOrder("1000", "30")
	settled.Status = domain.StatusDone

	suite.expectBeginRollback()
	suite.orderRepo.On("FindOrderForSettlementInTx", suite.ctx, suite.tx, suite.orderID).Return(settled, nil).Once()

	_, err := suite.service.Finalize(suite.ctx, suite.orderID, "", suite.userID)

	suite.ErrorIs(err, apperrors.ErrPrecondition)
	suite.assertNoWrites()
	suite.accountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestFinalize_NothingToDistribute() {
	for _, expenses := range []string{"1000", "1500"} {
		suite.Run(expenses, func() {
			suite.SetupTest()
			suite.expectBeginRollback()
			suite.orderRepo.On("FindOrderForSettlementInTx", suite.ctx, suite.tx, suite.orderID).Return(suite.workOrder("1000", "30"), nil).Once()
			suite.expenseRepo.On("SumObjectExpensesInTx", suite.ctx, suite.tx, suite.orderID).Return(dec(expenses), nil).Once()

			_, err := suite.service.Finalize(suite.ctx, suite.orderID, "", suite.userID)

			suite.Require().ErrorIs(err, apperrors.ErrPrecondition)
			suite.Contains(err.Error(), "nothing to distribute")
			suite.accountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, mock.Anything)
			suite.assertNoWrites()
		})
	}
}

func (suite *SettlementServiceTestSuite) TestFinalize_MissingCrewAccountIsConsistencyError() {
	order := suite.workOrder("1000", "30")
	order.CrewAccountID = nil

	suite.expectBeginRollback()
	suite.orderRepo.On("FindOrderForSettlementInTx", suite.ctx, suite.tx, suite.orderID).Return(order, nil).Once()
	suite.expenseRepo.On("SumObjectExpensesInTx", suite.ctx, suite.tx, suite.orderID).Return(decimal.Zero, nil).Once()

	_, err := suite.service.Finalize(suite.ctx, suite.orderID, "", suite.userID)

	suite.ErrorIs(err, apperrors.ErrConsistency)
	suite.assertNoWrites()
}

func (suite *SettlementServiceTestSuite) TestFinalize_MissingOwnerAccountIsConsistencyError() {
	ownerAccountID := uuid.NewString()
	suite.expectBeginRollback()
	suite.orderRepo.On("FindOrderForSettlementInTx", suite.ctx, suite.tx, suite.orderID).Return(suite.workOrder("1000", "30"), nil).Once()
	suite.expenseRepo.On("SumObjectExpensesInTx", suite.ctx, suite.tx, suite.orderID).Return(decimal.Zero, nil).Once()
	suite.accountRepo.On("FindAccountsByIDsForUpdate", suite.ctx, suite.tx, []string{suite.crewAccountID, ownerAccountID}).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Finalize(suite.ctx, suite.orderID, ownerAccountID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConsistency)
	suite.assertNoWrites()
}

func (suite *SettlementServiceTestSuite) TestFinalize_LostRaceOnCompletionRollsBack() {
	ownerAccountID := uuid.NewString()
	suite.expectBeginRollback()
	suite.orderRepo.On("FindOrderForSettlementInTx", suite.ctx, suite.tx, suite.orderID).Return(suite.workOrder("1000", "30"), nil).Once()
	suite.expenseRepo.On("SumObjectExpensesInTx", suite.ctx, suite.tx, suite.orderID).Return(decimal.Zero, nil).Once()
	suite.expectLockAccounts(ownerAccountID)
	suite.txnRepo.On("SaveTransactionsInTx", suite.ctx, suite.tx, mock.Anything).Return(nil).Once()
	suite.orderRepo.On("CompleteOrderInTx", suite.ctx, suite.tx, suite.orderID, mock.Anything, mock.Anything).Return(apperrors.ErrConflict).Once()

	_, err := suite.service.Finalize(suite.ctx, suite.orderID, ownerAccountID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.orderRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.orderRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestFinalize_OwnerAccountCannotBeCrewAccount() {
	suite.expectBeginRollback()
	suite.orderRepo.On("FindOrderForSettlementInTx", suite.ctx, suite.tx, suite.orderID).Return(suite.workOrder("1000", "30"), nil).Once()
	suite.expenseRepo.On("SumObjectExpensesInTx", suite.ctx, suite.tx, suite.orderID).Return(decimal.Zero, nil).Once()

	_, err := suite.service.Finalize(suite.ctx, suite.orderID, suite.crewAccountID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.assertNoWrites()
}

func (suite *SettlementServiceTestSuite) TestFinalize_BeginFailureIsReturned() {
	suite.orderRepo.On("Begin", suite.ctx).Return(nil, apperrors.ErrTransient).Once()

	_, err := suite.service.Finalize(suite.ctx, suite.orderID, "", suite.userID)

	suite.ErrorIs(err, apperrors.ErrTransient)
	suite.orderRepo.AssertNotCalled(suite.T(), "FindOrderForSettlementInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestPreviewSettlement() {
	order := suite.workOrder("2500.50", "33.3").Order
	suite.orderRepo.On("FindOrderByID", suite.ctx, suite.orderID).Return(&order, nil).Once()
	suite.brigadeRepo.On("FindBrigadeByID", suite.ctx, suite.brigadeID).
		Return(&domain.Brigade{BrigadeID: suite.brigadeID, ProfitPercentage: dec("33.3"), IsActive: true}, nil).Once()
	suite.expenseRepo.On("SumObjectExpenses", suite.ctx, suite.orderID).Return(dec("500.50"), nil).Once()

	summary, err := suite.service.PreviewSettlement(suite.ctx, suite.orderID)

	suite.Require().NoError(err)
	suite.True(dec("2000").Equal(summary.NetProfit))
	suite.True(dec("666").Equal(summary.CrewShare))
	suite.True(dec("1334").Equal(summary.OwnerShare))
	suite.orderRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestPreviewSettlement_NotInWork() {
	order := suite.workOrder("100", "10").Order
	order.Status = domain.StatusNew
	suite.orderRepo.On("FindOrderByID", suite.ctx, suite.orderID).Return(&order, nil).Once()

	_, err := suite.service.PreviewSettlement(suite.ctx, suite.orderID)

	suite.ErrorIs(err, apperrors.ErrPrecondition)
}

func (suite *SettlementServiceTestSuite) TestPreviewSettlement_MalformedOrderID() {
	suite.orderRepo.On("FindOrderByID", suite.ctx, "not-a-uuid").
		Return(nil, fmt.Errorf("%w: malformed identifier", apperrors.ErrValidation)).Once()

	_, err := suite.service.PreviewSettlement(suite.ctx, "not-a-uuid")

	suite.ErrorIs(err, apperrors.ErrPrecondition)
}

func TestSettlementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
