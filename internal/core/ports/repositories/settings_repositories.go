package repositories

import (
	"context"

	"github.com/SscSPs/crew_ledger/internal/core/domain"
)

// SettingsRepositoryFacade defines operations on configuration values
type SettingsRepositoryFacade interface {
	GetSetting(ctx context.Context, key string) (*domain.Setting, error)
	ListSettings(ctx context.Context) ([]domain.Setting, error)
	// UpsertSetting writes a value; the database announces it on settings_updates.
	UpsertSetting(ctx context.Context, setting domain.Setting) error
}
