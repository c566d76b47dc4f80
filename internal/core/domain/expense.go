package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ObjectExpense is a cost booked against one order; the sum is deducted before profit is split.
type ObjectExpense struct {
	ExpenseID string          `json:"expenseID"`
	OrderID   string          `json:"orderID"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Comment   string          `json:"comment"`
	CreatedAt time.Time       `json:"createdAt"`
}
