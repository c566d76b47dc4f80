package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/crew_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres SQLSTATE codes the repositories translate.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgInvalidTextRepr      = "22P02"
	pgNumericOutOfRange    = "22003"
)

// dbExecutor is satisfied by both *BaseRepository and pgx.Tx.
type dbExecutor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
	// AcquireTimeout bounds how long Begin waits for a pooled connection. Zero means no bound.
	AcquireTimeout time.Duration
}

// acquire takes a pooled connection, waiting at most AcquireTimeout.
// An exhausted pool surfaces as ErrTransient.
func (r *BaseRepository) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	acquireCtx := ctx
	if r.AcquireTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, r.AcquireTimeout)
		defer cancel()
	}

	conn, err := r.Pool.Acquire(acquireCtx)
	if err != nil {
		if ctx.Err() == nil && acquireCtx.Err() != nil {
			return nil, fmt.Errorf("%w: no database connection available", apperrors.ErrTransient)
		}
		return nil, mapPgError(apperrors.NewAppError(http.StatusServiceUnavailable, "failed to acquire connection", err))
	}
	return conn, nil
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		conn.Release()
		return nil, mapPgError(apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err))
	}
	return &pooledTx{Tx: tx, conn: conn}, nil
}

// Exec runs a single statement on a bounded pool connection.
func (r *BaseRepository) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	defer conn.Release()
	return conn.Exec(ctx, sql, arguments...)
}

// Query runs a query on a bounded pool connection. The connection is released when the rows are closed.
func (r *BaseRepository) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		conn.Release()
		return nil, err
	}
	return &pooledRows{Rows: rows, conn: conn}, nil
}

// QueryRow runs a single-row query on a bounded pool connection.
func (r *BaseRepository) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	conn, err := r.acquire(ctx)
	if err != nil {
		return errRow{err: err}
	}
	return &pooledRow{row: conn.QueryRow(ctx, sql, args...), conn: conn}
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return mapPgError(apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", err))
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", err)
	}
	return nil
}

// pooledTx returns its connection to the pool once the transaction ends.
type pooledTx struct {
	pgx.Tx
	conn *pgxpool.Conn
}

func (t *pooledTx) Commit(ctx context.Context) error {
	err := t.Tx.Commit(ctx)
	t.release()
	return err
}

func (t *pooledTx) Rollback(ctx context.Context) error {
	err := t.Tx.Rollback(ctx)
	t.release()
	return err
}

func (t *pooledTx) release() {
	if t.conn != nil {
		t.conn.Release()
		t.conn = nil
	}
}

type pooledRows struct {
	pgx.Rows
	conn *pgxpool.Conn
}

func (r *pooledRows) Close() {
	r.Rows.Close()
	if r.conn != nil {
		r.conn.Release()
		r.conn = nil
	}
}

type pooledRow struct {
	row  pgx.Row
	conn *pgxpool.Conn
}

func (r *pooledRow) Scan(dest ...any) error {
	defer r.conn.Release()
	return r.row.Scan(dest...)
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}

// mapPgError translates driver failures into the apperrors sentinels callers switch on.
// Unrecognised errors are returned unchanged.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: referenced row missing (%s)", apperrors.ErrNotFound, pgErr.ConstraintName)
		case pgInvalidTextRepr:
			return fmt.Errorf("%w: malformed identifier", apperrors.ErrValidation)
		case pgNumericOutOfRange:
			return fmt.Errorf("%w: amount out of range", apperrors.ErrValidation)
		case pgSerializationFailure, pgDeadlockDetected:
			return fmt.Errorf("%w: %v", apperrors.ErrTransient, err)
		}
		return err
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %v", apperrors.ErrTransient, err)
	}
	return err
}
