package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines which money pool an account represents.
type AccountType string

const (
	AccountCash AccountType = "cash"
	AccountBank AccountType = "bank"
	AccountCrew AccountType = "crew"
)

// IsValid reports whether t is a known account type.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountCash, AccountBank, AccountCrew:
		return true
	}
	return false
}

// Account represents a named money pool within the ledger.
// Balance is only ever changed together with a Transaction row referencing the account.
type Account struct {
	AccountID   string          `json:"accountID"`
	UserID      *string         `json:"userID,omitempty"` // nil for company-wide accounts
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
	IsActive    bool            `json:"isActive"`
	AuditFields
}

// Default accounts seeded by migration 000002.
const (
	DefaultCashAccountID = "00000000-0000-0000-0000-00000000ca54"
	DefaultBankAccountID = "00000000-0000-0000-0000-00000000ba4c"
)
