package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/crew_ledger/internal/apperrors"
	"github.com/SscSPs/crew_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(base BaseRepository) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{BaseRepository: base}
}

var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

func (r *PgxSettingsRepository) GetSetting(ctx context.Context, key string) (*domain.Setting, error) {
	var s domain.Setting
	err := r.QueryRow(ctx, `SELECT key, value, updated_at FROM settings WHERE key = $1;`, key).
		Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get setting %s: %w", key, mapPgError(err))
	}
	return &s, nil
}

func (r *PgxSettingsRepository) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	rows, err := r.Query(ctx, `SELECT key, value, updated_at FROM settings ORDER BY key;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", mapPgError(err))
	}
	defer rows.Close()

	settings := []domain.Setting{}
	for rows.Next() {
		var s domain.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setting row: %w", err)
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating setting rows: %w", mapPgError(err))
	}
	return settings, nil
}

// UpsertSetting inserts or overwrites a value. The settings trigger publishes it on settings_updates.
func (r *PgxSettingsRepository) UpsertSetting(ctx context.Context, setting domain.Setting) error {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.Exec(ctx, query, setting.Key, setting.Value, setting.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert setting %s: %w", setting.Key, mapPgError(err))
	}
	return nil
}
