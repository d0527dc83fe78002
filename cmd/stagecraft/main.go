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

	"stagecraft/internal/auth"
	"stagecraft/internal/config"
	"stagecraft/internal/content"
	"stagecraft/internal/github"
	"stagecraft/internal/handlers"
	"stagecraft/internal/mailer"
	"stagecraft/internal/middleware"
	"stagecraft/internal/router"
	"stagecraft/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg)

	// Content repository client. nil when credentials are absent; the
	// sources and the blob store then operate on local files directly.
	gh := github.New(cfg.GitHubOwner, cfg.GitHubRepo, cfg.GitHubToken, cfg.GitHubBranch)
	if gh != nil {
		slog.Info("content source: GitHub repository",
			"owner", cfg.GitHubOwner, "repo", cfg.GitHubRepo, "branch", cfg.GitHubBranch)
	} else {
		slog.Info("content source: local files", "data", cfg.DataFile, "public", cfg.PublicDir)
	}

	dataSource := content.NewSource(gh, cfg.DataFile, cfg.DataFile)
	cfgSource := content.NewSource(gh, cfg.SiteConfigFile, cfg.SiteConfigFile)
	store := content.NewStore(dataSource, cfgSource)

	var blobs storage.BlobStore
	if gh != nil {
		blobs = storage.NewGitHubStore(gh)
	} else {
		blobs = storage.NewLocalStore(cfg.PublicDir)
	}

	manager := auth.NewManager(cfg.JWTSecret, cfg.AdminEmails, !cfg.IsDev())
	codes := auth.NewCodeStore()
	defer codes.Stop()

	limiter := middleware.NewLimiter()
	defer limiter.Stop()

	mail, err := mailer.New(cfg)
	if err != nil {
		slog.Error("failed to configure mailer", "error", err)
		os.Exit(1)
	}
	if mail == nil {
		slog.Warn("SMTP not configured, mail delivery disabled")
	}

	handler := router.New(router.Deps{
		Public:  handlers.NewPublicHandler(store),
		Auth:    handlers.NewAuthHandler(manager, codes, limiter, mail),
		Admin:   handlers.NewAdminHandler(store),
		Upload:  handlers.NewUploadHandler(blobs, store),
		Contact: handlers.NewContactHandler(limiter, mail),
		Manager: manager,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}

// setupLogger configures slog: JSON output in production, human-readable
// text with debug level in development.
func setupLogger(cfg *config.Config) {
	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))
}
