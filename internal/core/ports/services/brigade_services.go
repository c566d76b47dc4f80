package services

import (
	"context"

	"github.com/SscSPs/crew_ledger/internal/core/domain"
	"github.com/SscSPs/crew_ledger/internal/dto"
)

// BrigadeSvcFacade defines crew onboarding and lookup
type BrigadeSvcFacade interface {
	// CreateBrigade creates the brigade and its crew account together.
	CreateBrigade(ctx context.Context, req dto.CreateBrigadeRequest, userID string) (*domain.Brigade, error)

	GetBrigade(ctx context.Context, brigadeID string) (*domain.Brigade, error)

	// GetBrigadeForBrigadier returns the active brigade led by userID, or ErrNotFound.
	GetBrigadeForBrigadier(ctx context.Context, userID string) (*domain.Brigade, error)

	ListBrigades(ctx context.Context) ([]domain.Brigade, error)
}
