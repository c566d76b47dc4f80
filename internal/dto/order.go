package dto

import (
	"time"

	"github.com/SscSPs/crew_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest creates an order in status new.
// TotalPrice may be omitted when a bill of materials is supplied; it is then the BOM total.
type CreateOrderRequest struct {
	CustomerID      string                  `json:"customerID" binding:"required"`
	TotalPrice      decimal.Decimal         `json:"totalPrice"`
	BillOfMaterials *domain.BillOfMaterials `json:"billOfMaterials"`
}

// ClaimOrderRequest names the brigade taking the order. Empty means the caller's own brigade.
type ClaimOrderRequest struct {
	BrigadeID string `json:"brigadeID" binding:"omitempty,uuid"`
}

// UpdateOrderStatusRequest is a direct status write.
type UpdateOrderStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required,oneof=new processing work done cancel"`
}

// FinalizeOrderRequest optionally selects the account the owner share is paid into.
type FinalizeOrderRequest struct {
	OwnerAccountID string `json:"ownerAccountID" binding:"omitempty,uuid"`
}

// CreateObjectExpenseRequest books a cost against an order.
type CreateObjectExpenseRequest struct {
	Amount   decimal.Decimal `json:"amount" binding:"money"`
	Category string          `json:"category" binding:"max=64"`
	Comment  string          `json:"comment" binding:"max=500"`
}

type OrderResponse struct {
	OrderID    string              `json:"orderID"`
	CustomerID string              `json:"customerID"`
	BrigadeID  *string             `json:"brigadeID,omitempty"`
	Status     domain.OrderStatus  `json:"status"`
	TotalPrice decimal.Decimal     `json:"totalPrice"`
	Details    domain.OrderDetails `json:"details"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

func ToOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		OrderID:    o.OrderID,
		CustomerID: o.UserID,
		BrigadeID:  o.BrigadeID,
		Status:     o.Status,
		TotalPrice: o.TotalPrice,
		Details:    o.Details,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

// SettlementResponse reports how an order's net profit was (or would be) split.
type SettlementResponse struct {
	OrderID          string          `json:"orderID"`
	TotalPrice       decimal.Decimal `json:"totalPrice"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	NetProfit        decimal.Decimal `json:"netProfit"`
	ProfitPercentage decimal.Decimal `json:"profitPercentage"`
	CrewShare        decimal.Decimal `json:"crewShare"`
	OwnerShare       decimal.Decimal `json:"ownerShare"`
}

func ToSettlementResponse(orderID string, s domain.FinancialSummary) SettlementResponse {
	return SettlementResponse{
		OrderID:          orderID,
		TotalPrice:       s.TotalPrice,
		TotalExpenses:    s.TotalExpenses,
		NetProfit:        s.NetProfit,
		ProfitPercentage: s.ProfitPercentage,
		CrewShare:        s.CrewShare,
		OwnerShare:       s.OwnerShare,
	}
}

type ObjectExpenseResponse struct {
	ExpenseID string          `json:"expenseID"`
	OrderID   string          `json:"orderID"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Comment   string          `json:"comment"`
	CreatedAt time.Time       `json:"createdAt"`
}

func ToObjectExpenseResponse(e domain.ObjectExpense) ObjectExpenseResponse {
	return ObjectExpenseResponse{
		ExpenseID: e.ExpenseID,
		OrderID:   e.OrderID,
		Amount:    e.Amount,
		Category:  e.Category,
		Comment:   e.Comment,
		CreatedAt: e.CreatedAt,
	}
}

func ToListObjectExpensesResponse(expenses []domain.ObjectExpense) []ObjectExpenseResponse {
	resp := make([]ObjectExpenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = ToObjectExpenseResponse(e)
	}
	return resp
}
