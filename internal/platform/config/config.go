package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers understood by STORAGE_DRIVER.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
	StorageDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	LogLevel      string
	EnableDBCheck bool

	StorageDriver string
	DatabaseURL   string
	SQLitePath    string
	RunMigrations bool

	MaxCurrencyPairs  int
	UpsertConcurrency int

	// RateLimit uses the ulule limiter format, e.g. "3-M" for three requests per minute.
	RateLimit string
	RedisURL  string

	JWTSecret          string
	CORSAllowedOrigins []string
	PosthogAPIKey      string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("SQLITE_PATH", "fxql.db")
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("MAX_CURRENCY_PAIRS", 1000)
	viper.SetDefault("UPSERT_CONCURRENCY", 0)
	viper.SetDefault("RATE_LIMIT", "3-M")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		LogLevel:           viper.GetString("LOG_LEVEL"),
		EnableDBCheck:      viper.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:      strings.ToLower(strings.TrimSpace(viper.GetString("STORAGE_DRIVER"))),
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		SQLitePath:         viper.GetString("SQLITE_PATH"),
		RunMigrations:      viper.GetBool("RUN_MIGRATIONS"),
		MaxCurrencyPairs:   viper.GetInt("MAX_CURRENCY_PAIRS"),
		UpsertConcurrency:  viper.GetInt("UPSERT_CONCURRENCY"),
		RateLimit:          viper.GetString("RATE_LIMIT"),
		RedisURL:           viper.GetString("REDIS_URL"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		CORSAllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		PosthogAPIKey:      viper.GetString("POSTHOG_API_KEY"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		slog.Warn("PORT environment variable not set, using default", "port", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL must be set when STORAGE_DRIVER is %q", StorageDriverPostgres)
		}
	case StorageDriverSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH must be set when STORAGE_DRIVER is %q", StorageDriverSQLite)
		}
	case StorageDriverMemory:
		slog.Warn("Using in-memory storage, exchange rates will not survive a restart")
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.MaxCurrencyPairs <= 0 {
		return nil, fmt.Errorf("MAX_CURRENCY_PAIRS must be positive, got %d", cfg.MaxCurrencyPairs)
	}
	if cfg.UpsertConcurrency < 0 {
		slog.Warn("UPSERT_CONCURRENCY is negative, reconciling without a bound", "value", cfg.UpsertConcurrency)
		cfg.UpsertConcurrency = 0
	}
	if cfg.JWTSecret == "" && cfg.IsProduction {
		slog.Warn("JWT_SECRET not set, FXQL endpoints are unauthenticated")
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
