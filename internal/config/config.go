// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Catalog sources.
const (
	SourceEmbedded = "embedded"
	SourcePostgres = "postgres"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"APP_PORT" envDefault:"8080"`
	Env  string `env:"APP_ENV" envDefault:"development"` // "development", "production", "testing"

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`  // "debug", "info", "warn", "error"
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // "text" or "json"

	// Where the users/categories/products relations are read from.
	CatalogSource string `env:"CATALOG_SOURCE" envDefault:"embedded"`

	// PostgreSQL connection (only used with CATALOG_SOURCE=postgres)
	DBHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	DBPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	DBUser     string `env:"POSTGRES_USER" envDefault:"catalogview"`
	DBPassword string `env:"POSTGRES_PASSWORD" envDefault:"changeme"`
	DBName     string `env:"POSTGRES_DB" envDefault:"catalogview"`

	// Valkey (Redis-compatible session store)
	ValkeyHost     string `env:"VALKEY_HOST" envDefault:"localhost"`
	ValkeyPort     string `env:"VALKEY_PORT" envDefault:"6379"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"`

	// How long an idle browser keeps its filters.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

// Load reads configuration from environment variables (and a .env file in
// the working directory, if present), applying development defaults.
// Variables set to the empty string count as unset. Returns an error if
// critical values are invalid for the selected mode.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg, env.Options{Environment: nonEmptyEnviron()}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	switch cfg.CatalogSource {
	case SourceEmbedded, SourcePostgres:
	default:
		return nil, fmt.Errorf("CATALOG_SOURCE must be %q or %q, got %q", SourceEmbedded, SourcePostgres, cfg.CatalogSource)
	}

	if cfg.Env == "production" && cfg.UsePostgres() {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// UsePostgres returns true if the catalog is read from PostgreSQL.
func (c *Config) UsePostgres() bool {
	return c.CatalogSource == SourcePostgres
}

// nonEmptyEnviron returns the process environment without empty values, so
// that an empty variable falls through to its default.
func nonEmptyEnviron() map[string]string {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		key, value, _ := strings.Cut(kv, "=")
		if value != "" {
			vars[key] = value
		}
	}
	return vars
}
