package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	LogLevel     string
	ServiceName  string
	JWTSecret    string
	JWTIssuer    string

	// Connection pool
	DBMaxConns           int32
	DBMinConns           int32
	DBConnectTimeout     time.Duration
	DBAcquireTimeout     time.Duration
	DBIdleTimeout        time.Duration
	DBMaxConnLifetime    time.Duration
	DBSlowQueryThreshold time.Duration

	// Change notification bridge
	NotifyChannels         []string
	NotifyReconnectBackoff time.Duration
	NotifySubscriberBuffer int

	RateLimit          string
	CORSAllowedOrigins []string
	MigrationsPath     string
	RunMigrations      bool
}

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVICE_NAME", "crew-ledger")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "crew-ledger")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 1)
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	v.SetDefault("DB_ACQUIRE_TIMEOUT", "3s")
	v.SetDefault("DB_IDLE_TIMEOUT", "5m")
	v.SetDefault("DB_MAX_CONN_LIFETIME", "1h")
	v.SetDefault("DB_SLOW_QUERY_THRESHOLD", "500ms")
	v.SetDefault("NOTIFY_CHANNELS", "order_updates,settings_updates")
	v.SetDefault("NOTIFY_RECONNECT_BACKOFF", "5s")
	v.SetDefault("NOTIFY_SUBSCRIBER_BUFFER", 64)
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("RUN_MIGRATIONS", true)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:            v.GetString("PGSQL_URL"),
		Port:                   v.GetString("PORT"),
		IsProduction:           v.GetBool("IS_PRODUCTION"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		ServiceName:            v.GetString("SERVICE_NAME"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		JWTIssuer:              v.GetString("JWT_ISSUER"),
		DBMaxConns:             v.GetInt32("DB_MAX_CONNS"),
		DBMinConns:             v.GetInt32("DB_MIN_CONNS"),
		NotifyChannels:         splitList(v.GetString("NOTIFY_CHANNELS")),
		NotifySubscriberBuffer: v.GetInt("NOTIFY_SUBSCRIBER_BUFFER"),
		RateLimit:              v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		MigrationsPath:         v.GetString("MIGRATIONS_PATH"),
		RunMigrations:          v.GetBool("RUN_MIGRATIONS"),
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"DB_CONNECT_TIMEOUT", &cfg.DBConnectTimeout},
		{"DB_ACQUIRE_TIMEOUT", &cfg.DBAcquireTimeout},
		{"DB_IDLE_TIMEOUT", &cfg.DBIdleTimeout},
		{"DB_MAX_CONN_LIFETIME", &cfg.DBMaxConnLifetime},
		{"DB_SLOW_QUERY_THRESHOLD", &cfg.DBSlowQueryThreshold},
		{"NOTIFY_RECONNECT_BACKOFF", &cfg.NotifyReconnectBackoff},
	}
	for _, d := range durations {
		raw := v.GetString(d.key)
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s (%q): %w", d.key, raw, err)
		}
		*d.dst = parsed
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.DBMinConns > cfg.DBMaxConns {
		return nil, fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", cfg.DBMinConns, cfg.DBMaxConns)
	}
	if len(cfg.NotifyChannels) == 0 {
		log.Println("Warning: NOTIFY_CHANNELS is empty. The notification bridge will not listen.")
	}
	if cfg.NotifySubscriberBuffer <= 0 {
		cfg.NotifySubscriberBuffer = 64
	}

	return cfg, nil
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
