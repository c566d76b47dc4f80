package services

import (
	"context"

	"github.com/SscSPs/crew_ledger/internal/core/domain"
)

// SettingsSvcFacade manages key/value configuration that is broadcast on change.
type SettingsSvcFacade interface {
	GetSetting(ctx context.Context, key string) (*domain.Setting, error)
	SetSetting(ctx context.Context, key string, value string) (*domain.Setting, error)
	ListSettings(ctx context.Context) ([]domain.Setting, error)
}
