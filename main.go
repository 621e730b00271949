package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shiki0x/nymph/config"
	"github.com/Shiki0x/nymph/internal/handler"
	"github.com/Shiki0x/nymph/internal/repository/sqlite"
	"github.com/Shiki0x/nymph/internal/service"
	"github.com/Shiki0x/nymph/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level)

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied", "path", cfg.DB.Path)

	authService := service.NewAuthService(db.Users(), cfg.Auth.JWTSecret, cfg.Auth.BcryptCost)
	habitService := service.NewHabitService(db.Habits())
	cardService := service.NewCardService(db.Cards())
	linkService := service.NewLinkService(db.Links())
	profileService := service.NewProfileService(db.Users(), db.Habits(), db.Cards(), db.Links())

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, habitService, cardService, linkService, profileService, cfg.Auth.CookieSecure)

	root := handler.SecurityHeaders(
		handler.RequestID(
			handler.RequestLogger(
				handler.Metrics(mux))))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           root,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
