// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/marholt/satview/internal/api"
	"github.com/marholt/satview/internal/catalog"
	"github.com/marholt/satview/internal/mcpserver"
	"github.com/marholt/satview/internal/observability"
	"github.com/marholt/satview/internal/query"
	"github.com/marholt/satview/internal/refresh"
	"github.com/marholt/satview/internal/sse"
)

// Run starts the HTTP application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("catalog_path", cfg.Catalog.Path),
		slog.Int("max_visible", cfg.Render.MaxVisible),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Initialize the catalog store.
	store := catalog.NewStore()
	if err := loadCatalog(store, cfg.Catalog.Path, logger); err != nil {
		logger.Warn("initial catalog load failed, will retry",
			slog.String("error", err.Error()))
	}

	// Metrics.
	collector, err := observability.NewCollector(nil)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	collector.SetCatalogSize(store.Len())
	unsubscribe := store.Subscribe(func() {
		collector.SetCatalogSize(store.Len())
	})
	defer unsubscribe()

	// SSE broker.
	broker := sse.NewBroker()
	defer broker.Close()

	// Build query service, handlers, and router.
	svc := query.NewService(store)
	h := api.NewHandler(svc, store, collector, cfg.Render.MaxVisible, cfg.Render.ViewportMargin)
	apiRouter := api.NewRouter(h, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(collector.Middleware)

	// Health check endpoints (unauthenticated). Readiness reflects whether
	// the catalog has received a snapshot.
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !store.Loaded() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"catalog not loaded"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Prometheus metrics (unauthenticated).
	r.Get("/metrics", collector.Handler().ServeHTTP)

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Retry the initial catalog load with a bounded poller if it failed.
	if !store.Loaded() {
		g.Go(func() error {
			poller := refresh.Poller{MaxAttempts: 10, Interval: 3 * time.Second}
			ok := poller.Run(gCtx, func() bool {
				return loadCatalog(store, cfg.Catalog.Path, logger) == nil
			})
			if !ok && gCtx.Err() == nil {
				logger.Error("catalog load retries exhausted",
					slog.String("path", cfg.Catalog.Path))
			}
			return nil
		})
	}

	// Start the catalog file watcher with the SSE callback.
	g.Go(func() error {
		err := catalog.Watch(gCtx, store, cfg.Catalog.Path, logger, func(count int) {
			broker.PublishCatalogUpdated(count)
		})
		if err != nil {
			logger.Warn("watcher failed", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP starts the MCP stdio server instead of the HTTP surface. The
// catalog must load before serving; MCP clients expect the tools to answer
// from a populated catalog.
func RunMCP(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// MCP uses stdout for the protocol; logs must go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	store := catalog.NewStore()
	if err := loadCatalog(store, cfg.Catalog.Path, logger); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	svc := query.NewService(store)
	return mcpserver.New(svc).ServeStdio()
}

func loadCatalog(store *catalog.Store, path string, logger *slog.Logger) error {
	records, _, err := catalog.LoadFile(path)
	if err != nil {
		return err
	}
	store.Replace(records)
	logger.Info("catalog loaded", slog.Int("records", len(records)))
	return nil
}
