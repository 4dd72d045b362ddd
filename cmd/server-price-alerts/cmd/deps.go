package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/donaldgifford/server-price-alerts/internal/catalog"
	"github.com/donaldgifford/server-price-alerts/internal/config"
	"github.com/donaldgifford/server-price-alerts/internal/notify"
	"github.com/donaldgifford/server-price-alerts/internal/store"
)

type closer func(ctx context.Context) error

func noClose(context.Context) error { return nil }

// openStore connects the configured alert store. The returned pool is
// non-nil only for the postgres driver so the catalog reader can share it.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (store.Store, *pgxpool.Pool, closer, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pg, err := store.NewPostgresStore(ctx, cfg.DSN(), store.WithPoolSize(cfg.PoolSize))
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		return pg, pg.Pool(), func(context.Context) error { pg.Close(); return nil }, nil
	case config.DriverMongo:
		ms, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.Name)
		if err != nil {
			return nil, nil, nil, err
		}
		return ms, nil, ms.Close, nil
	case config.DriverMemory:
		return store.NewMemoryStore(), nil, noClose, nil
	default:
		return nil, nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// openCatalog builds the cached catalog provider. A postgres catalog without
// its own DSN reads through the alert store's pool.
func openCatalog(
	ctx context.Context,
	cfg config.CatalogConfig,
	shared *pgxpool.Pool,
	log *slog.Logger,
) (*catalog.CachedProvider, closer, error) {
	var (
		provider catalog.Provider
		closeFn  closer = noClose
	)

	switch cfg.Source {
	case config.CatalogSourceHTTP:
		provider = catalog.NewClient(cfg.BaseURL,
			catalog.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
			catalog.WithRateLimit(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst),
		)
	case config.CatalogSourcePostgres:
		pool := shared
		if cfg.DSN != "" {
			p, err := pgxpool.New(ctx, cfg.DSN)
			if err != nil {
				return nil, nil, fmt.Errorf("connecting to catalog database: %w", err)
			}
			pool = p
			closeFn = func(context.Context) error { p.Close(); return nil }
		}
		if pool == nil {
			return nil, nil, errors.New("catalog.dsn is required without a postgres alert store")
		}
		provider = catalog.NewPostgresCatalog(pool)
	default:
		return nil, nil, fmt.Errorf("unsupported catalog source %q", cfg.Source)
	}

	return catalog.NewCachedProvider(provider, cfg.CacheTTL, catalog.WithCacheLogger(log)), closeFn, nil
}

// buildTransport fans out to every enabled notification target. With none
// enabled, notifications are only logged.
func buildTransport(cfg config.NotificationsConfig, log *slog.Logger) (notify.Transport, closer) {
	var (
		transports notify.MultiTransport
		closers    []closer
	)

	if cfg.Discord.Enabled {
		transports = append(transports, notify.NewDiscordTransport(cfg.Discord.BotToken,
			notify.WithAPIBase(cfg.Discord.APIBase),
			notify.WithRateLimit(cfg.Discord.RateLimit.PerSecond, cfg.Discord.RateLimit.Burst),
		))
	}
	if cfg.Kafka.Enabled {
		k := notify.NewKafkaTransport(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		transports = append(transports, k)
		closers = append(closers, func(context.Context) error { return k.Close() })
	}

	closeAll := func(ctx context.Context) error {
		var err error
		for _, c := range closers {
			err = errors.Join(err, c(ctx))
		}
		return err
	}

	switch len(transports) {
	case 0:
		log.Warn("no notification transport enabled, alerts will only be logged")
		return notify.NewNoOpTransport(log), closeAll
	case 1:
		return transports[0], closeAll
	default:
		return transports, closeAll
	}
}
