package domain

import "github.com/shopspring/decimal"

// Brigade is a subcontracting crew with a contractual share of each order's net profit.
type Brigade struct {
	BrigadeID        string          `json:"brigadeID"`
	Name             string          `json:"name"`
	BrigadierID      string          `json:"brigadierID"`
	ProfitPercentage decimal.Decimal `json:"profitPercentage"` // 0..100
	IsActive         bool            `json:"isActive"`
	AccountID        string          `json:"accountID"` // the brigade's crew sub-account
	AuditFields
}

// ValidPercentage reports whether p lies within 0..100 inclusive.
func ValidPercentage(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(hundred)
}
