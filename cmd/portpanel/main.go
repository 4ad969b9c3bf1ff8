package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/portpanel/internal/adapter/driven/memory"
	sqliteadapter "github.com/ericfisherdev/portpanel/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/portpanel/internal/adapter/driving/http"
	"github.com/ericfisherdev/portpanel/internal/application"
	"github.com/ericfisherdev/portpanel/internal/config"
	"github.com/ericfisherdev/portpanel/internal/domain/port/driven"
	"github.com/ericfisherdev/portpanel/internal/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(logger)
	slog.Info("config loaded",
		"environment", cfg.Environment,
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"token_ttl", cfg.TokenTTL,
		"user_store", cfg.UserStore,
		"password_scheme", cfg.PasswordScheme,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire adapters.
	var users driven.CredentialStore = memory.NewCredentialRepo()
	if cfg.PersistUsers() {
		users = sqliteadapter.NewUserRepo(db)
	}
	portStore := sqliteadapter.NewPortRepo(db)

	verifier, err := application.NewCredentialVerifier(cfg.PasswordScheme)
	if err != nil {
		return err
	}

	secret, err := tokenSecret(cfg)
	if err != nil {
		return err
	}

	// 6. Create services and seed default ports on first start.
	tokens := application.NewTokenService(secret, cfg.TokenTTL, time.Now)
	accounts := application.NewAccountService(users, verifier, tokens)
	ports := application.NewPortService(portStore, logger)

	if err := ports.EnsureDefaults(ctx); err != nil {
		return err
	}

	// 7. Create HTTP handler with middleware.
	handler := httphandler.NewServeMux(httphandler.NewHandler(accounts, ports, logger), logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// 8. Wait for a shutdown signal or a server failure, then drain.
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("http server shutdown error", "error", err)
		}
		return nil
	})

	slog.Info("portpanel started", "listen_addr", cfg.ListenAddr)

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("shutdown complete")
	return nil
}

// tokenSecret returns the configured signing secret. In the local environment
// an unset secret is replaced by a random one, so tokens do not survive a
// restart.
func tokenSecret(cfg *config.Config) ([]byte, error) {
	if cfg.TokenSecret != "" {
		return []byte(cfg.TokenSecret), nil
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate token secret: %w", err)
	}
	slog.Warn("PORTPANEL_TOKEN_SECRET not set, using a random secret for this process")
	return secret, nil
}
