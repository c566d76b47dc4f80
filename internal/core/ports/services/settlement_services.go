package services

import (
	"context"

	"github.com/SscSPs/crew_ledger/internal/core/domain"
)

// SettlementSvc distributes a finished order's net profit between the crew and the owner.
type SettlementSvc interface {
	// Finalize credits both shares, marks the order done and stores the summary, all or nothing.
	// An empty ownerAccountID pays the owner share into the default cash account.
	Finalize(ctx context.Context, orderID string, ownerAccountID string, userID string) (*domain.FinancialSummary, error)

	// PreviewSettlement computes the same numbers without writing anything.
	PreviewSettlement(ctx context.Context, orderID string) (*domain.FinancialSummary, error)
}
