package repositories

import (
	"context"

	"github.com/SscSPs/crew_ledger/internal/core/domain"
)

// BrigadeReader defines read operations for brigade data
type BrigadeReader interface {
	FindBrigadeByID(ctx context.Context, brigadeID string) (*domain.Brigade, error)

	// FindBrigadeByBrigadier returns the active brigade led by the given user.
	FindBrigadeByBrigadier(ctx context.Context, userID string) (*domain.Brigade, error)

	ListBrigades(ctx context.Context) ([]domain.Brigade, error)
}

// BrigadeWriter defines write operations for brigade data
type BrigadeWriter interface {
	// SaveBrigadeWithAccount inserts the brigade and its crew account in one transaction.
	SaveBrigadeWithAccount(ctx context.Context, brigade domain.Brigade, account domain.Account) error
}

// BrigadeRepositoryFacade combines all brigade-related repository interfaces
type BrigadeRepositoryFacade interface {
	BrigadeReader
	BrigadeWriter
}
