package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/securepass/securepass/internal/api/handler"
	"github.com/securepass/securepass/internal/core/ports"
	"github.com/securepass/securepass/internal/infrastructure/config"
	"github.com/securepass/securepass/internal/infrastructure/db/memory"
	"github.com/securepass/securepass/internal/infrastructure/db/mongo"
	"github.com/securepass/securepass/internal/infrastructure/db/postgres"
	"github.com/securepass/securepass/internal/infrastructure/db/redis"
)

// connectBackoff is the retry policy for reaching a dependency at startup.
var connectBackoff = func() retry.Backoff {
	return retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
}

// withRetry retries fn under connectBackoff. Every failure is treated as
// transient; the last one is returned once the policy is exhausted.
func withRetry(ctx context.Context, log zerolog.Logger, what string, fn func(ctx context.Context) error) error {
	attempt := 0
	return retry.Do(ctx, connectBackoff(), func(ctx context.Context) error {
		attempt++
		if err := fn(ctx); err != nil {
			log.Warn().Err(err).Str("dependency", what).Int("attempt", attempt).Msg("connection attempt failed")
			return retry.RetryableError(err)
		}
		return nil
	})
}

// storeBundle is the selected persistence backend.
type storeBundle struct {
	accounts ports.AccountRepository
	entries  ports.VaultRepository
	pinger   handler.Pinger
	close    func(ctx context.Context) error
}

// openStore connects the backend named by cfg.StoreDriver and prepares its
// schema: indexes on MongoDB, migrations on PostgreSQL.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storeBundle, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		store := memory.NewStore()
		return &storeBundle{
			accounts: store.Accounts(),
			entries:  store.Entries(),
			pinger:   store,
			close:    func(context.Context) error { return nil },
		}, nil

	case config.StoreMongo:
		var bundle *storeBundle
		err := withRetry(ctx, log, "mongo", func(ctx context.Context) error {
			client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
			if err != nil {
				return err
			}
			accounts := mongo.NewAccountRepository(db)
			entries := mongo.NewVaultRepository(db)
			if err := mongo.EnsureIndexes(ctx, accounts, entries); err != nil {
				_ = client.Disconnect(ctx)
				return err
			}
			bundle = &storeBundle{
				accounts: accounts,
				entries:  entries,
				pinger:   mongo.Pinger{Client: client},
				close:    client.Disconnect,
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("mongo store: %w", err)
		}
		return bundle, nil

	case config.StorePostgres:
		var bundle *storeBundle
		err := withRetry(ctx, log, "postgres", func(ctx context.Context) error {
			db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
			if err != nil {
				return err
			}
			if err := postgres.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return err
			}
			bundle = &storeBundle{
				accounts: postgres.NewAccountRepository(db),
				entries:  postgres.NewVaultRepository(db),
				pinger:   postgres.Pinger{DB: db},
				close:    func(context.Context) error { return db.Close() },
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("postgres store: %w", err)
		}
		return bundle, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// revocationBundle is the token revocation backend.
type revocationBundle struct {
	revoker ports.TokenRevoker
	pinger  handler.Pinger
	close   func() error
}

// openRevocation connects Redis when enabled; otherwise revocation is a no-op
// and deleted accounts' tokens stay valid until they expire.
func openRevocation(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*revocationBundle, error) {
	if !cfg.Redis.Enabled {
		log.Warn().Msg("redis disabled: token revocation is off")
		return &revocationBundle{revoker: redis.NoopRevoker{}, close: func() error { return nil }}, nil
	}

	var bundle *revocationBundle
	err := withRetry(ctx, log, "redis", func(ctx context.Context) error {
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		list := redis.NewRevocationList(client)
		bundle = &revocationBundle{revoker: list, pinger: list, close: client.Close}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	return bundle, nil
}
