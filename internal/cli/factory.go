package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/menubot"
	"github.com/aretw0/menubot/internal/config"
	"github.com/aretw0/menubot/pkg/adapters/file"
	"github.com/aretw0/menubot/pkg/adapters/memory"
	"github.com/aretw0/menubot/pkg/adapters/postgres"
	"github.com/aretw0/menubot/pkg/adapters/redis"
	"github.com/aretw0/menubot/pkg/domain"
	"github.com/aretw0/menubot/pkg/menu"
	"github.com/aretw0/menubot/pkg/observability"
	"github.com/aretw0/menubot/pkg/persistence/middleware"
	"github.com/aretw0/menubot/pkg/ports"
)

// Backend is an opened store plus what the store brings with it.
type Backend struct {
	Store  ports.StateStore
	Locker ports.DistributedLocker
	Close  func() error
}

// OpenStore connects the store selected by cfg.Store.
// Redis also provides a distributed locker.
func OpenStore(ctx context.Context, cfg *config.Config) (*Backend, error) {
	noop := func() error { return nil }

	switch cfg.Store {
	case config.StoreMemory:
		return &Backend{Store: memory.NewStore(), Close: noop}, nil

	case config.StoreFile:
		return &Backend{Store: file.New(cfg.SessionDir), Close: noop}, nil

	case config.StoreRedis:
		var opts []redis.Option
		if cfg.SessionTTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.SessionTTL))
		}
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, opts...)
		if err := store.Client().Ping(ctx).Err(); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
		}
		return &Backend{
			Store:  store,
			Locker: redis.NewLocker(store.Client(), redis.DefaultPrefix),
			Close:  store.Close,
		}, nil

	case config.StorePostgres:
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store := postgres.New(pool)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return &Backend{Store: store, Close: func() error { pool.Close(); return nil }}, nil
	}
	return nil, fmt.Errorf("%w: unknown store %q", config.ErrInvalidConfig, cfg.Store)
}

// LoadMenu returns the menu file if one is configured, else the built-in
// menu for the locale.
func LoadMenu(cfg *config.Config) (*menu.Menu, error) {
	if cfg.MenuFile != "" {
		return menu.LoadFile(cfg.MenuFile)
	}
	return menu.ByLocale(cfg.Locale)
}

// BotOptions tune NewBot beyond the config.
type BotOptions struct {
	Metrics      *observability.Metrics
	EventNotices bool
}

// NewBot wires a Bot from cfg. The returned Backend must be closed by the
// caller.
func NewBot(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts BotOptions) (*menubot.Bot, *Backend, error) {
	m, err := LoadMenu(cfg)
	if err != nil {
		return nil, nil, err
	}
	backend, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	var hooks []domain.LifecycleHooks
	if cfg.Debug {
		hooks = append(hooks, observability.LoggingHooks(logger))
	}
	var observer middleware.Observer
	if opts.Metrics != nil {
		hooks = append(hooks, opts.Metrics.Hooks())
		observer = opts.Metrics
	}

	store := middleware.Chain(backend.Store, middleware.Instrument(observer, logger))

	botOpts := []menubot.Option{
		menubot.WithMenu(m),
		menubot.WithStore(store),
		menubot.WithLogger(logger),
		menubot.WithLifecycleHooks(observability.MergeHooks(hooks...)),
		menubot.WithEventNotices(opts.EventNotices),
	}
	if backend.Locker != nil {
		botOpts = append(botOpts, menubot.WithLocker(backend.Locker))
	}
	return menubot.New(botOpts...), backend, nil
}
