package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/securepass/securepass/internal/api"
	"github.com/securepass/securepass/internal/api/handler"
	"github.com/securepass/securepass/internal/core/service"
	"github.com/securepass/securepass/internal/infrastructure/config"
	"github.com/securepass/securepass/internal/infrastructure/security"
	"github.com/securepass/securepass/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API. The store selected by STORE_DRIVER is connected
(and migrated on PostgreSQL) before the listener opens.`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "securepass",
	})

	store, err := openStore(ctx, cfg, logger.Component("store"))
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("store close failed")
		}
	}()

	revocation, err := openRevocation(ctx, cfg, logger.Component("redis"))
	if err != nil {
		return err
	}
	defer func() {
		if err := revocation.close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	issuer, err := security.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	if err != nil {
		return fmt.Errorf("token issuer: %w", err)
	}

	pingers := map[string]handler.Pinger{"store": store.pinger}
	if revocation.pinger != nil {
		pingers["redis"] = revocation.pinger
	}

	e := api.NewRouter(api.RouterDeps{
		AuthService: service.NewAuthService(
			store.accounts,
			security.NewBcryptHasher(cfg.Auth.BcryptCost),
			issuer,
			logger.Component("auth"),
		),
		VaultService:      service.NewVaultService(store.entries, store.accounts, logger.Component("vault")),
		StrengthEvaluator: service.NewStrengthService(),
		SecretGenerator:   service.NewGeneratorService(),
		Revoker:           revocation.revoker,
		JWTSecret:         cfg.Auth.JWTSecret,
		Logger:            logger.Component("http"),
		Pingers:           pingers,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
