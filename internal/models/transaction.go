package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a row of the append-only transactions table.
type Transaction struct {
	TransactionID   string          `db:"id"`
	AccountID       string          `db:"account_id"`
	UserID          string          `db:"user_id"`
	Amount          decimal.Decimal `db:"amount"` // Always non-negative; sign comes from TransactionType
	TransactionType string          `db:"type"`
	Category        string          `db:"category"`
	Comment         string          `db:"comment"`
	OrderID         sql.NullString  `db:"order_id"`
	TransferID      sql.NullString  `db:"transfer_id"`
	CreatedAt       time.Time       `db:"created_at"`
}
