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

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	githubadapter "github.com/chevah/github-hooks-server/internal/adapter/driven/github"
	sqliteadapter "github.com/chevah/github-hooks-server/internal/adapter/driven/sqlite"
	tracadapter "github.com/chevah/github-hooks-server/internal/adapter/driven/trac"
	httphandler "github.com/chevah/github-hooks-server/internal/adapter/driving/http"
	webhandler "github.com/chevah/github-hooks-server/internal/adapter/driving/web"
	"github.com/chevah/github-hooks-server/internal/application"
	"github.com/chevah/github-hooks-server/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on missing required env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"external_timeout", cfg.ExternalTimeout,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open the activity database and run migrations.
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("database ready", "path", cfg.DBPath)

	// 4. Wire driven adapters.
	ghClient := githubadapter.NewClient(cfg.GitHubToken)

	tracClient, err := tracadapter.NewClient(cfg.TracURL, cfg.ExternalTimeout)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := tracClient.Close(); closeErr != nil {
			slog.Error("error closing trac client", "error", closeErr)
		}
	}()

	actionRepo := sqliteadapter.NewActionRepo(db)

	// 5. Create the reconciler and leaderboard services.
	reconciler := application.NewReconciler(ghClient, tracClient, actionRepo, slog.Default())

	aliases, err := loadAliases(cfg.AliasesPath)
	if err != nil {
		return err
	}
	leaderboardSvc := application.NewLeaderboardService(actionRepo, aliases)

	// 6. Register routes and apply middleware.
	apiHandler := httphandler.NewHandler(reconciler, ghClient, cfg.WebhookSecret, cfg.ExternalTimeout, slog.Default())
	webHandler := webhandler.NewHandler(leaderboardSvc, slog.Default())

	mux := http.NewServeMux()
	httphandler.RegisterRoutes(mux, apiHandler)
	webhandler.RegisterRoutes(mux, webHandler)
	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("hooks server started", "listen_addr", cfg.ListenAddr)

	// 7. Wait for shutdown signal, then drain.
	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// loadAliases reads the author alias file when one is configured.
func loadAliases(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return application.LoadAliases(f)
}
