package database

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

type traceKey struct{}

type traceStart struct {
	sql   string
	start time.Time
}

// SlowQueryTracer logs statements that take longer than Threshold. It never cancels them.
type SlowQueryTracer struct {
	Logger    *slog.Logger
	Threshold time.Duration

	now func() time.Time
}

var _ pgx.QueryTracer = (*SlowQueryTracer)(nil)

func NewSlowQueryTracer(logger *slog.Logger, threshold time.Duration) *SlowQueryTracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlowQueryTracer{Logger: logger, Threshold: threshold, now: time.Now}
}

func (t *SlowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traceStart{sql: data.SQL, start: t.now()})
}

func (t *SlowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	started, ok := ctx.Value(traceKey{}).(traceStart)
	if !ok {
		return
	}
	elapsed := t.now().Sub(started.start)
	if elapsed < t.Threshold {
		return
	}

	attrs := []any{
		slog.String("sql", compactSQL(started.sql)),
		slog.Duration("duration", elapsed),
		slog.Int64("rows", data.CommandTag.RowsAffected()),
	}
	if data.Err != nil {
		attrs = append(attrs, slog.String("error", data.Err.Error()))
	}
	t.Logger.WarnContext(ctx, "slow query", attrs...)
}

// compactSQL collapses whitespace so multi-line statements log on one line.
func compactSQL(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}
