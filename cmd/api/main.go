package main

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

	"github.com/joho/godotenv"

	"github.com/compostlink/compostlink/internal/account"
	"github.com/compostlink/compostlink/internal/account/cache"
	accountStore "github.com/compostlink/compostlink/internal/account/store"
	"github.com/compostlink/compostlink/internal/config"
	"github.com/compostlink/compostlink/internal/database"
	exchangeHttp "github.com/compostlink/compostlink/internal/http"
	accountHandler "github.com/compostlink/compostlink/internal/http/account"
	"github.com/compostlink/compostlink/internal/http/auth"
	ratingHandler "github.com/compostlink/compostlink/internal/http/rating"
	txHandler "github.com/compostlink/compostlink/internal/http/transaction"
	"github.com/compostlink/compostlink/internal/rating"
	ratingStore "github.com/compostlink/compostlink/internal/rating/store"
	"github.com/compostlink/compostlink/internal/transaction"
	txStore "github.com/compostlink/compostlink/internal/transaction/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg))

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler).With("app", cfg.App.Name)
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
	}

	accountService := account.NewService(accountStore.New(db))

	var (
		profiles  transaction.ProfileSource = accountService
		forgetter accountHandler.Forgetter
	)

	if cfg.Exchange.ProfileCacheSize > 0 {
		cached, err := cache.New(accountService, cfg.Exchange.ProfileCacheSize, cfg.Exchange.ProfileCacheTTL)
		if err != nil {
			return fmt.Errorf("creating profile cache: %w", err)
		}

		profiles, forgetter = cached, cached
	}

	var (
		transactionService = transaction.NewService(txStore.New(db), profiles, transaction.Options{
			RequireAccepted: cfg.Exchange.RequireAccepted,
		})
		ratingService = rating.NewService(ratingStore.New(db))
	)

	var (
		transactionH = txHandler.NewHandler(transactionService)
		ratingH      = ratingHandler.NewHandler(ratingService)
		accountH     = accountHandler.NewHandler(accountService, forgetter)
	)

	router := exchangeHttp.New(
		auth.NewVerifier(cfg.Auth.JWTSecret),
		exchangeHttp.Options{AllowedOrigins: cfg.CORS.AllowedOrigins},
		transactionH,
		ratingH,
		accountH,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           http.TimeoutHandler(router, cfg.Server.Timeout, `{"error":{"code":"TIMEOUT","message":"request timed out"}}`),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
