package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/crew_ledger/internal/core/services"
	"github.com/SscSPs/crew_ledger/internal/handlers"
	"github.com/SscSPs/crew_ledger/internal/middleware"
	"github.com/SscSPs/crew_ledger/internal/notify"
	"github.com/SscSPs/crew_ledger/internal/platform/config"
	"github.com/SscSPs/crew_ledger/internal/platform/health"
	"github.com/SscSPs/crew_ledger/internal/platform/logging"
	"github.com/SscSPs/crew_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/crew_ledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 15 * time.Second

// @title Crew Ledger API
// @version 1.0
// @description Company ledger, order settlement and change notifications for subcontracting crews.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	env := "development"
	if cfg.IsProduction {
		env = "production"
	}
	logger := logging.NewLogger(cfg.LogLevel, cfg.ServiceName, env)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RunMigrations {
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return err
		}
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{
		MaxConns:           cfg.DBMaxConns,
		MinConns:           cfg.DBMinConns,
		ConnectTimeout:     cfg.DBConnectTimeout,
		MaxConnIdleTime:    cfg.DBIdleTimeout,
		MaxConnLifetime:    cfg.DBMaxConnLifetime,
		SlowQueryThreshold: cfg.DBSlowQueryThreshold,
	}, logger)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(dbPool, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	repos := pgsql.NewRepositoryProvider(dbPool, cfg.DBAcquireTimeout)
	serviceContainer := services.NewServiceContainer(repos, services.NewMetrics(registry))

	notifyMetrics := notify.NewMetrics(registry)
	bus := notify.NewBus(logger, notifyMetrics)
	bridge := notify.NewBridge(
		notify.PgxConnector(cfg.DatabaseURL, cfg.DBConnectTimeout),
		bus,
		notify.BridgeConfig{Channels: cfg.NotifyChannels, ReconnectBackoff: cfg.NotifyReconnectBackoff},
		logger,
		notifyMetrics,
	)
	bridgeDone := make(chan struct{})
	go func() {
		defer close(bridgeDone)
		if len(cfg.NotifyChannels) == 0 {
			return
		}
		bridge.Run(ctx)
	}()

	healthManager := health.NewManager(false)
	healthManager.AddCheck("database", dbPool.Ping)

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}
	if err := middleware.RegisterValidators(); err != nil {
		return err
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.NewHTTPMetrics(registry).Middleware(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, handlers.Infrastructure{
		Bus:         bus,
		Health:      healthManager,
		Gatherer:    registry,
		RateLimiter: rateLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()
	healthManager.SetReady(true)

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			stop()
			<-bridgeDone
			return err
		}
	}

	healthManager.SetReady(false)
	// Open event streams only end once their subscriptions close.
	bus.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
	}

	stop()
	<-bridgeDone
	logger.Info("Server stopped")
	return nil
}
