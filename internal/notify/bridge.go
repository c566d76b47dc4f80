package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	DefaultReconnectBackoff = 5 * time.Second
	closeTimeout            = 5 * time.Second
)

// Listener is the part of *pgx.Conn the bridge uses.
type Listener interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
	Close(ctx context.Context) error
}

// Connector opens the dedicated listening connection.
type Connector func(ctx context.Context) (Listener, error)

// PgxConnector dials databaseURL outside of any pool; LISTEN registrations live and die with the connection.
func PgxConnector(databaseURL string, connectTimeout time.Duration) Connector {
	return func(ctx context.Context) (Listener, error) {
		cfg, err := pgx.ParseConfig(databaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse listener config: %w", err)
		}
		if connectTimeout > 0 {
			cfg.ConnectTimeout = connectTimeout
		}
		conn, err := pgx.ConnectConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
}

type BridgeConfig struct {
	Channels         []string
	ReconnectBackoff time.Duration
}

// Bridge relays Postgres LISTEN/NOTIFY traffic onto a Bus.
type Bridge struct {
	connect   Connector
	bus       *Bus
	channels  []string
	backoff   time.Duration
	logger    *slog.Logger
	metrics   *Metrics
	now       func() time.Time
	connected atomic.Bool
}

func NewBridge(connect Connector, bus *Bus, cfg BridgeConfig, logger *slog.Logger, metrics *Metrics) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	backoff := cfg.ReconnectBackoff
	if backoff <= 0 {
		backoff = DefaultReconnectBackoff
	}
	return &Bridge{
		connect:  connect,
		bus:      bus,
		channels: cfg.Channels,
		backoff:  backoff,
		logger:   logger.With(slog.String("component", "notify_bridge")),
		metrics:  metrics,
		now:      time.Now,
	}
}

// Connected reports whether the bridge currently holds a subscribed connection.
func (b *Bridge) Connected() bool {
	return b.connected.Load()
}

// Run listens until ctx is cancelled. Connection failures, including the first one,
// are logged and retried after the configured backoff.
func (b *Bridge) Run(ctx context.Context) {
	for {
		err := b.listen(ctx)
		if ctx.Err() != nil {
			b.logger.Info("Notification bridge stopped")
			return
		}

		b.metrics.reconnect()
		b.logger.Warn("Notification listener disconnected, retrying",
			slog.String("error", err.Error()),
			slog.Duration("backoff", b.backoff))

		select {
		case <-ctx.Done():
			b.logger.Info("Notification bridge stopped")
			return
		case <-time.After(b.backoff):
		}
	}
}

func (b *Bridge) listen(ctx context.Context) error {
	conn, err := b.connect(ctx)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := conn.Close(closeCtx); err != nil {
			b.logger.Debug("Closing listener connection failed", slog.String("error", err.Error()))
		}
	}()

	for _, channel := range b.channels {
		if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize()); err != nil {
			return fmt.Errorf("listen %s: %w", channel, err)
		}
	}

	b.setConnected(true)
	defer b.setConnected(false)
	b.logger.Info("Listening for database notifications", slog.Any("channels", b.channels))

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		evt := DecodeNotification(n, b.now())
		b.metrics.received(evt.Channel)
		delivered := b.bus.Publish(evt)
		b.logger.Debug("Notification relayed",
			slog.String("channel", evt.Channel),
			slog.Int("subscribers", delivered))
	}
}

func (b *Bridge) setConnected(connected bool) {
	b.connected.Store(connected)
	b.metrics.setConnected(connected)
}
