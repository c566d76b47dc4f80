package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/crew_ledger/internal/apperrors"
	"github.com/SscSPs/crew_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crew_ledger/internal/core/ports/services"
)

const maxSettingKeyLength = 128

type settingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepositoryFacade
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(settingsRepo portsrepo.SettingsRepositoryFacade) portssvc.SettingsSvcFacade {
	return &settingsService{BaseService: newBaseService(), settingsRepo: settingsRepo}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

func (s *settingsService) GetSetting(ctx context.Context, key string) (*domain.Setting, error) {
	return s.settingsRepo.GetSetting(ctx, key)
}

// SetSetting writes the value. Subscribers learn about it through the settings_updates channel.
func (s *settingsService) SetSetting(ctx context.Context, key string, value string) (*domain.Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" || len(key) > maxSettingKeyLength {
		return nil, fmt.Errorf("%w: setting key must be 1-%d characters", apperrors.ErrValidation, maxSettingKeyLength)
	}

	setting := domain.Setting{Key: key, Value: value, UpdatedAt: s.now()}
	if err := s.settingsRepo.UpsertSetting(ctx, setting); err != nil {
		s.LogError(ctx, err, "Failed to save setting", slog.String("key", key))
		return nil, err
	}

	s.LogInfo(ctx, "Setting updated", slog.String("key", key))
	return &setting, nil
}

func (s *settingsService) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	return s.settingsRepo.ListSettings(ctx)
}
