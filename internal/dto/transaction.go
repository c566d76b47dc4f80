package dto

import (
	"time"

	"github.com/SscSPs/crew_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	DefaultTransactionListLimit = 50
	MaxTransactionListLimit     = 500
)

// RecordTransactionRequest records a single income or expense against one account.
type RecordTransactionRequest struct {
	AccountID       string                 `json:"accountID" binding:"required,uuid"`
	Amount          decimal.Decimal        `json:"amount" binding:"money"`
	TransactionType domain.TransactionType `json:"type" binding:"required,oneof=income expense"`
	Category        string                 `json:"category" binding:"max=64"`
	Comment         string                 `json:"comment" binding:"max=500"`
	OrderID         *string                `json:"orderID" binding:"omitempty,uuid"`
}

// TransferRequest moves money between two accounts.
type TransferRequest struct {
	FromAccountID string          `json:"fromAccountID" binding:"required,uuid"`
	ToAccountID   string          `json:"toAccountID" binding:"required,uuid"`
	Amount        decimal.Decimal `json:"amount" binding:"money"`
	Comment       string          `json:"comment" binding:"max=500"`
}

// ListTransactionsParams holds the query parameters of the transactions listing.
type ListTransactionsParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1"`
	AccountID string `form:"accountID" binding:"omitempty,uuid"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID   string                 `json:"transactionID"`
	AccountID       string                 `json:"accountID"`
	AccountName     string                 `json:"accountName,omitempty"`
	UserID          string                 `json:"userID"`
	UserName        string                 `json:"userName,omitempty"`
	Amount          decimal.Decimal        `json:"amount"`
	TransactionType domain.TransactionType `json:"type"`
	Category        string                 `json:"category"`
	Comment         string                 `json:"comment"`
	OrderID         *string                `json:"orderID,omitempty"`
	TransferID      *string                `json:"transferID,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
}

// TransferResponse returns both legs of a transfer.
type TransferResponse struct {
	TransferID string                `json:"transferID"`
	Legs       []TransactionResponse `json:"legs"`
}

func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		AccountID:       t.AccountID,
		UserID:          t.UserID,
		Amount:          t.Amount,
		TransactionType: t.TransactionType,
		Category:        t.Category,
		Comment:         t.Comment,
		OrderID:         t.OrderID,
		TransferID:      t.TransferID,
		CreatedAt:       t.CreatedAt,
	}
}

func ToListTransactionsResponse(views []domain.TransactionView) []TransactionResponse {
	resp := make([]TransactionResponse, len(views))
	for i, v := range views {
		resp[i] = ToTransactionResponse(v.Transaction)
		resp[i].AccountName = v.AccountName
		resp[i].UserName = v.UserName
	}
	return resp
}

func ToTransferResponse(legs []domain.Transaction) TransferResponse {
	resp := TransferResponse{Legs: make([]TransactionResponse, len(legs))}
	for i, leg := range legs {
		resp.Legs[i] = ToTransactionResponse(leg)
		if leg.TransferID != nil {
			resp.TransferID = *leg.TransferID
		}
	}
	return resp
}
