package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/crew_ledger/internal/apperrors"
	"github.com/SscSPs/crew_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/crew_ledger/internal/models"
	"github.com/SscSPs/crew_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const brigadeSelect = `
	SELECT b.id, b.name, b.brigadier_id, b.profit_percentage, b.is_active, a.id, b.created_at, b.updated_at
	FROM brigades b
	LEFT JOIN accounts a ON a.brigade_id = b.id AND a.type = 'crew'
`

type PgxBrigadeRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

func newPgxBrigadeRepository(base BaseRepository, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.BrigadeRepositoryFacade {
	return &PgxBrigadeRepository{BaseRepository: base, accountRepo: accountRepo}
}

var _ portsrepo.BrigadeRepositoryFacade = (*PgxBrigadeRepository)(nil)

func scanBrigade(row pgx.Row) (domain.Brigade, error) {
	var m models.Brigade
	err := row.Scan(
		&m.BrigadeID,
		&m.Name,
		&m.BrigadierID,
		&m.ProfitPercentage,
		&m.IsActive,
		&m.AccountID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return domain.Brigade{}, err
	}
	return mapping.ToDomainBrigade(m), nil
}

// SaveBrigadeWithAccount inserts the brigade and its crew account atomically.
func (r *PgxBrigadeRepository) SaveBrigadeWithAccount(ctx context.Context, brigade domain.Brigade, account domain.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO brigades (id, name, brigadier_id, profit_percentage, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, query,
		brigade.BrigadeID,
		brigade.Name,
		brigade.BrigadierID,
		brigade.ProfitPercentage,
		brigade.IsActive,
		brigade.CreatedAt,
		brigade.UpdatedAt,
	)
	if err != nil {
		mapped := mapPgError(err)
		if errors.Is(mapped, apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: user %s already leads an active brigade", apperrors.ErrDuplicate, brigade.BrigadierID)
		}
		return fmt.Errorf("failed to save brigade %s: %w", brigade.BrigadeID, mapped)
	}

	if err := r.accountRepo.SaveAccountInTx(ctx, tx, account, &brigade.BrigadeID); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxBrigadeRepository) FindBrigadeByID(ctx context.Context, brigadeID string) (*domain.Brigade, error) {
	b, err := scanBrigade(r.QueryRow(ctx, brigadeSelect+` WHERE b.id = $1;`, brigadeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find brigade %s: %w", brigadeID, mapPgError(err))
	}
	return &b, nil
}

// FindBrigadeByBrigadier returns the active brigade led by userID.
func (r *PgxBrigadeRepository) FindBrigadeByBrigadier(ctx context.Context, userID string) (*domain.Brigade, error) {
	b, err := scanBrigade(r.QueryRow(ctx, brigadeSelect+` WHERE b.brigadier_id = $1 AND b.is_active = TRUE;`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find brigade for brigadier %s: %w", userID, mapPgError(err))
	}
	return &b, nil
}

func (r *PgxBrigadeRepository) ListBrigades(ctx context.Context) ([]domain.Brigade, error) {
	rows, err := r.Query(ctx, brigadeSelect+` ORDER BY b.name;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query brigades: %w", mapPgError(err))
	}
	defer rows.Close()

	brigades := []domain.Brigade{}
	for rows.Next() {
		b, err := scanBrigade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan brigade row: %w", err)
		}
		brigades = append(brigades, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating brigade rows: %w", mapPgError(err))
	}
	return brigades, nil
}
