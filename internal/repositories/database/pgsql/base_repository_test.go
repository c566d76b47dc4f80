package pgsql

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/SscSPs/crew_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stalledPool returns a pool whose connection attempts never complete in time.
func stalledPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	cfg, err := pgxpool.ParseConfig("postgres://crew@127.0.0.1:5432/crew_ledger?sslmode=disable")
	require.NoError(t, err)
	cfg.MaxConns = 1
	cfg.MinConns = 0
	cfg.ConnConfig.DialFunc = func(ctx context.Context, network, addr string) (net.Conn, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
			return nil, errors.New("dial stalled")
		}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestBaseRepository_AcquireTimeoutIsTransient(t *testing.T) {
	repo := &BaseRepository{Pool: stalledPool(t), AcquireTimeout: 50 * time.Millisecond}
	ctx := context.Background()

	_, err := repo.Exec(ctx, "UPDATE orders SET updated_at = now() WHERE id = $1", "x")
	assert.ErrorIs(t, err, apperrors.ErrTransient)

	_, err = repo.Query(ctx, "SELECT 1")
	assert.ErrorIs(t, err, apperrors.ErrTransient)

	var one int
	err = repo.QueryRow(ctx, "SELECT 1").Scan(&one)
	assert.ErrorIs(t, err, apperrors.ErrTransient)

	_, err = repo.Begin(ctx)
	assert.ErrorIs(t, err, apperrors.ErrTransient)
}

func TestBaseRepository_CallerCancellationIsNotTransient(t *testing.T) {
	repo := &BaseRepository{Pool: stalledPool(t), AcquireTimeout: time.Second}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Exec(ctx, "SELECT 1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrTransient)
}

func TestMapPgError(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		want    error
		message string
	}{
		{name: "unique violation", code: pgUniqueViolation, want: apperrors.ErrDuplicate},
		{name: "foreign key violation", code: pgForeignKeyViolation, want: apperrors.ErrNotFound},
		{name: "serialization failure", code: pgSerializationFailure, want: apperrors.ErrTransient},
		{name: "deadlock", code: pgDeadlockDetected, want: apperrors.ErrTransient},
		{name: "malformed uuid", code: pgInvalidTextRepr, want: apperrors.ErrValidation, message: "malformed identifier"},
		{name: "numeric overflow", code: pgNumericOutOfRange, want: apperrors.ErrValidation, message: "amount out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: tt.code, Message: `invalid input syntax for type uuid: "abc"`}

			err := mapPgError(pgErr)

			assert.ErrorIs(t, err, tt.want)
			if tt.message != "" {
				assert.Equal(t, tt.want.Error()+": "+tt.message, err.Error())
			}
		})
	}
}
