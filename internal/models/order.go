package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Order represents a row of the orders table. Details holds the raw JSONB document.
type Order struct {
	OrderID    string          `db:"id"`
	UserID     string          `db:"user_id"`
	BrigadeID  sql.NullString  `db:"brigade_id"`
	Status     string          `db:"status"`
	TotalPrice decimal.Decimal `db:"total_price"`
	Details    []byte          `db:"details"`
	AuditFields
}

// Brigade represents a row of the brigades table joined with its crew account id.
type Brigade struct {
	BrigadeID        string          `db:"id"`
	Name             string          `db:"name"`
	BrigadierID      string          `db:"brigadier_id"`
	ProfitPercentage decimal.Decimal `db:"profit_percentage"`
	IsActive         bool            `db:"is_active"`
	AccountID        sql.NullString  `db:"account_id"`
	AuditFields
}
