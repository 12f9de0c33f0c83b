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
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/jera/internal/api"
	"github.com/starford/jera/internal/mcpserver"
	"github.com/starford/jera/internal/render"
	"github.com/starford/jera/internal/scaffold"
	"github.com/starford/jera/internal/search"
	"github.com/starford/jera/internal/site"
	"github.com/starford/jera/internal/sse"
	"github.com/starford/jera/internal/workspace"
)

// Run starts the preview server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{watch: true}

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
		slog.String("workspace_path", cfg.Workspace.Path),
		slog.String("output_dir", cfg.OutputDir()),
		slog.String("search_path", cfg.SearchPath()),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure workspace directory exists.
	if err := os.MkdirAll(cfg.Workspace.Path, 0o755); err != nil {
		return fmt.Errorf("create workspace dir: %w", err)
	}

	ws, err := workspace.New(cfg.Workspace.Path)
	if err != nil {
		return fmt.Errorf("init workspace: %w", err)
	}

	renderer := render.New(render.Options{LiveReload: app.watch})
	builder := site.NewBuilder(ws, renderer, logger)
	out := cfg.OutputDir()

	// Initial build. A broken document should not keep the server from
	// starting; the watcher rebuilds once it is fixed.
	if err := builder.Build(out); err != nil {
		logger.Warn("initial build failed", slog.String("error", err.Error()))
	}

	// Initialize search index.
	db, err := search.Open(cfg.SearchPath())
	if err != nil {
		return fmt.Errorf("init search index: %w", err)
	}
	defer db.Close()

	// Run initial sync.
	if err := search.Sync(db, ws, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	// SSE broker.
	broker := sse.NewBroker()

	// Build API service and router.
	svc := api.NewService(db)
	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	// Everything else is the built site.
	r.Handle("/*", http.FileServer(http.Dir(out)))

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start the workspace watcher: rebuild, resync, then tell open tabs
	// to reload.
	if app.watch {
		g.Go(func() error {
			onChange := func() {
				if buildErr := builder.Build(out); buildErr != nil {
					logger.Warn("rebuild failed", slog.String("error", buildErr.Error()))
					return
				}
				if syncErr := search.Sync(db, ws, logger); syncErr != nil {
					logger.Warn("search resync failed", slog.String("error", syncErr.Error()))
				}
				broker.PublishReload()
			}
			return site.Watch(gCtx, ws.Root(), []string{out, cfg.SearchPath()}, logger, onChange)
		})
	}

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

		broker.Close()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunBuild builds the static site once and exits. The first malformed
// document aborts the build with an error.
func RunBuild(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	ws, err := workspace.New(cfg.Workspace.Path)
	if err != nil {
		return fmt.Errorf("init workspace: %w", err)
	}

	builder := site.NewBuilder(ws, render.New(render.Options{}), logger)
	if err := builder.Build(cfg.OutputDir()); err != nil {
		return err
	}

	logger.Info("Build complete", slog.String("output_dir", cfg.OutputDir()))
	return nil
}

// RunNew scaffolds a document of the given kind and prints its path.
func RunNew(ctx context.Context, title, kind string, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	if err := os.MkdirAll(cfg.Workspace.Path, 0o755); err != nil {
		return fmt.Errorf("create workspace dir: %w", err)
	}

	ws, err := workspace.New(cfg.Workspace.Path)
	if err != nil {
		return fmt.Errorf("init workspace: %w", err)
	}

	rel, err := scaffold.CreateDocument(ws, title, kind)
	if err != nil {
		return err
	}

	fmt.Println(filepath.Join(ws.Root(), rel))
	return nil
}

// RunMCP starts the MCP server on stdio. Logs go to stderr because the
// stdio transport owns stdout.
func RunMCP(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(cfg.Workspace.Path, 0o755); err != nil {
		return fmt.Errorf("create workspace dir: %w", err)
	}

	ws, err := workspace.New(cfg.Workspace.Path)
	if err != nil {
		return fmt.Errorf("init workspace: %w", err)
	}

	db, err := search.Open(cfg.SearchPath())
	if err != nil {
		return fmt.Errorf("init search index: %w", err)
	}
	defer db.Close()

	if err := search.Sync(db, ws, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	builder := site.NewBuilder(ws, render.New(render.Options{}), logger)
	srv := mcpserver.New(ws, db, builder, cfg.OutputDir())

	logger.Info("MCP server starting (stdio)")
	return srv.ServeStdio()
}
