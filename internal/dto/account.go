package dto

import (
	"time"

	"github.com/SscSPs/crew_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// Crew accounts are only created through brigade onboarding.
type CreateAccountRequest struct {
	Name        string             `json:"name" binding:"required,max=120"`
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=cash bank"`
	OwnerUserID *string            `json:"ownerUserID"` // Optional
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string             `json:"accountID"`
	UserID      *string            `json:"userID,omitempty"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"accountType"`
	Balance     decimal.Decimal    `json:"balance"`
	IsActive    bool               `json:"isActive"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   acc.AccountID,
		UserID:      acc.UserID,
		Name:        acc.Name,
		AccountType: acc.AccountType,
		Balance:     acc.Balance,
		IsActive:    acc.IsActive,
		CreatedAt:   acc.CreatedAt,
		UpdatedAt:   acc.UpdatedAt,
	}
}

// ToListAccountsResponse converts a slice of domain accounts.
func ToListAccountsResponse(accounts []domain.Account) []AccountResponse {
	resp := make([]AccountResponse, len(accounts))
	for i := range accounts {
		resp[i] = ToAccountResponse(&accounts[i])
	}
	return resp
}

// ReconciliationEntry is one row of the balance verification report.
type ReconciliationEntry struct {
	AccountID     string          `json:"accountID"`
	Name          string          `json:"name"`
	Balance       decimal.Decimal `json:"balance"`
	LedgerBalance decimal.Decimal `json:"ledgerBalance"`
	Transactions  int64           `json:"transactions"`
	Balanced      bool            `json:"balanced"`
}

// ReconciliationResponse summarises VerifyBalances.
type ReconciliationResponse struct {
	Balanced bool                  `json:"balanced"`
	Accounts []ReconciliationEntry `json:"accounts"`
}

func ToReconciliationResponse(report []domain.AccountReconciliation) ReconciliationResponse {
	resp := ReconciliationResponse{Balanced: true, Accounts: make([]ReconciliationEntry, len(report))}
	for i, r := range report {
		ok := r.Balanced()
		resp.Accounts[i] = ReconciliationEntry{
			AccountID:     r.AccountID,
			Name:          r.Name,
			Balance:       r.Balance,
			LedgerBalance: r.LedgerBalance,
			Transactions:  r.Transactions,
			Balanced:      ok,
		}
		if !ok {
			resp.Balanced = false
		}
	}
	return resp
}
