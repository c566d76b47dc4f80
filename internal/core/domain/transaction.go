package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType carries the sign of a ledger entry; amounts themselves are never negative.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// IsValid reports whether t is income or expense.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// Well-known transaction categories written by the system itself.
const (
	CategoryTransfer    = "transfer"
	CategoryProfitShare = "profit_share"
	CategoryOwnerProfit = "owner_profit"
)

// Transaction is one immutable movement applied to exactly one account.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	AccountID       string          `json:"accountID"`
	UserID          string          `json:"userID"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType TransactionType `json:"transactionType"`
	Category        string          `json:"category"`
	Comment         string          `json:"comment"`
	OrderID         *string         `json:"orderID,omitempty"`
	TransferID      *string         `json:"transferID,omitempty"` // shared by both legs of a transfer
	CreatedAt       time.Time       `json:"createdAt"`
}

// SignedAmount is the effect of the transaction on its account balance.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.TransactionType == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionView is a Transaction joined with presentation labels.
type TransactionView struct {
	Transaction
	AccountName string `json:"accountName"`
	UserName    string `json:"userName"`
}

// AccountReconciliation compares a stored balance against the sum of its transactions.
type AccountReconciliation struct {
	AccountID     string          `json:"accountID"`
	Name          string          `json:"name"`
	Balance       decimal.Decimal `json:"balance"`
	LedgerBalance decimal.Decimal `json:"ledgerBalance"`
	Transactions  int64           `json:"transactions"`
}

// Balanced reports whether the stored balance matches the transaction log.
func (r AccountReconciliation) Balanced() bool {
	return r.Balance.Equal(r.LedgerBalance)
}
