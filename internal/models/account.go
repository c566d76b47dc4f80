package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Account represents a row of the accounts table.
type Account struct {
	AccountID   string          `db:"id"`
	UserID      sql.NullString  `db:"user_id"` // Nullable: company-wide accounts have no owner
	Name        string          `db:"name"`
	AccountType string          `db:"type"`
	Balance     decimal.Decimal `db:"balance"`
	IsActive    bool            `db:"is_active"`
	AuditFields
}
