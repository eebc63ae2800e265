// Package main is the entry point for the catalog view server.
// It loads configuration, reads and joins the catalog relations, connects to
// Valkey, sets up routing, and starts the HTTP server with graceful shutdown.
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

	"catalogview/internal/cache"
	"catalogview/internal/catalog"
	"catalogview/internal/config"
	"catalogview/internal/database"
	"catalogview/internal/fixtures"
	"catalogview/internal/handlers"
	"catalogview/internal/logging"
	"catalogview/internal/render"
	"catalogview/internal/router"
	"catalogview/internal/session"
	"catalogview/internal/store"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: level and format come from the environment.
	slog.SetDefault(logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"catalog_source", cfg.CatalogSource,
	)

	// Read the users, categories and products relations.
	rel, err := loadRelations(cfg)
	if err != nil {
		slog.Error("failed to load catalog relations", "error", err)
		os.Exit(1)
	}

	// Join them once. A dangling reference means the data is corrupt and
	// the view must not start.
	cat, err := catalog.FromRelations(rel)
	if err != nil {
		var rie *catalog.ReferentialIntegrityError
		if errors.As(err, &rie) {
			slog.Error("catalog data is inconsistent",
				"kind", rie.Kind,
				"relation", rie.Relation,
				"product_id", rie.ProductID,
				"category_id", rie.CategoryID,
				"user_id", rie.UserID,
			)
		}
		slog.Error("failed to build catalog", "error", err)
		os.Exit(1)
	}

	slog.Info("catalog loaded",
		"users", len(cat.Users()),
		"categories", len(cat.Categories()),
		"products", len(cat.Views()),
	)

	// Connect to Valkey (Redis-compatible session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// In non-development environments, mark cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, cfg.SessionTTL, secureCookies)

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	catalogHandlers := handlers.NewCatalog(renderer, sessionStore, cat)
	r := router.New(sessionStore, catalogHandlers, secureCookies)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// loadRelations reads the catalog from the configured source. The
// PostgreSQL connection is only held for the duration of the read.
func loadRelations(cfg *config.Config) (*catalog.Relations, error) {
	if !cfg.UsePostgres() {
		return fixtures.Load()
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		set, err := fixtures.Load()
		if err != nil {
			return nil, err
		}
		if err := database.Seed(db, set); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return store.Snapshot(ctx, db)
}
