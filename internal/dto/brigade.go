package dto

import (
	"time"

	"github.com/SscSPs/crew_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBrigadeRequest onboards a crew together with its crew account.
type CreateBrigadeRequest struct {
	Name             string          `json:"name" binding:"required,max=120"`
	BrigadierID      string          `json:"brigadierID" binding:"required"`
	ProfitPercentage decimal.Decimal `json:"profitPercentage" binding:"percentage"`
}

type BrigadeResponse struct {
	BrigadeID        string          `json:"brigadeID"`
	Name             string          `json:"name"`
	BrigadierID      string          `json:"brigadierID"`
	ProfitPercentage decimal.Decimal `json:"profitPercentage"`
	IsActive         bool            `json:"isActive"`
	AccountID        string          `json:"accountID"`
	CreatedAt        time.Time       `json:"createdAt"`
}

func ToBrigadeResponse(b *domain.Brigade) BrigadeResponse {
	return BrigadeResponse{
		BrigadeID:        b.BrigadeID,
		Name:             b.Name,
		BrigadierID:      b.BrigadierID,
		ProfitPercentage: b.ProfitPercentage,
		IsActive:         b.IsActive,
		AccountID:        b.AccountID,
		CreatedAt:        b.CreatedAt,
	}
}

func ToListBrigadesResponse(brigades []domain.Brigade) []BrigadeResponse {
	resp := make([]BrigadeResponse, len(brigades))
	for i := range brigades {
		resp[i] = ToBrigadeResponse(&brigades[i])
	}
	return resp
}
