package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/grunberg"
	"github.com/aretw0/grunberg/internal/adapters/file"
	"github.com/aretw0/grunberg/internal/config"
	"github.com/aretw0/grunberg/pkg/adapters/bolt"
	"github.com/aretw0/grunberg/pkg/adapters/loam"
	"github.com/aretw0/grunberg/pkg/adapters/memory"
	"github.com/aretw0/grunberg/pkg/adapters/redis"
	"github.com/aretw0/grunberg/pkg/adapters/sqlite"
	"github.com/aretw0/grunberg/pkg/observability"
	"github.com/aretw0/grunberg/pkg/persistence/middleware"
	"github.com/aretw0/grunberg/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Runtime is a configured game plus the resources it holds open.
type Runtime struct {
	Game     *grunberg.Game
	Config   config.Config
	Logger   *slog.Logger
	Registry *prometheus.Registry

	closers []func() error
}

// RuntimeOptions adjusts Open for the calling command.
type RuntimeOptions struct {
	// OneShot disables autosave; the command saves explicitly.
	OneShot bool
	// Metrics registers prometheus collectors on Registry.
	Metrics bool
	// Resume loads the saved game into the live state.
	Resume bool
}

// Open builds the store chain, quest catalog and game described by cfg.
func Open(cfg config.Config, logger *slog.Logger, ro RuntimeOptions) (*Runtime, error) {
	rt := &Runtime{Config: cfg, Logger: logger}

	store, locker, closeStore, err := OpenStore(cfg.Storage)
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, closeStore)

	opts := []grunberg.Option{
		grunberg.WithLogger(logger),
		grunberg.WithStore(store),
		grunberg.WithSaveKey(cfg.SaveKey),
		grunberg.WithAutosave(cfg.Autosave.Enabled && !ro.OneShot),
		grunberg.WithAutosaveDelay(cfg.Autosave.Delay),
	}
	if locker != nil {
		opts = append(opts, grunberg.WithLocker(locker))
	}

	active, fallback, err := cfg.Keys()
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	if active != nil {
		opts = append(opts, grunberg.WithStoreMiddleware(middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallback,
		})))
	}

	if cfg.QuestsDir != "" {
		catalog, err := loam.Open(cfg.QuestsDir)
		if err != nil {
			_ = rt.Close()
			return nil, fmt.Errorf("open quest catalog: %w", err)
		}
		opts = append(opts, grunberg.WithQuestCatalog(catalog))
	}

	if ro.Metrics {
		rt.Registry = prometheus.NewRegistry()
		m, err := observability.NewMetrics(rt.Registry)
		if err != nil {
			_ = rt.Close()
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		opts = append(opts, grunberg.WithMetrics(m))
	}

	rt.Game = grunberg.New(opts...)
	if ro.Resume {
		rt.Game.ContinueGame(context.Background())
	}
	return rt, nil
}

// Close flushes the game and releases the store. Closers run in reverse order.
func (rt *Runtime) Close() error {
	var errs []error
	if rt.Game != nil {
		errs = append(errs, rt.Game.Close())
	}
	for i := len(rt.closers) - 1; i >= 0; i-- {
		errs = append(errs, rt.closers[i]())
	}
	return errors.Join(errs...)
}

// OpenStore creates the save store for cfg. The locker is non-nil only for redis with locking on.
func OpenStore(cfg config.StorageConfig) (ports.SaveStore, ports.DistributedLocker, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendMemory:
		return memory.NewStore(), nil, noop, nil

	case config.BackendFile:
		return file.New(cfg.Path), nil, noop, nil

	case config.BackendRedis:
		var opts []redis.Option
		if cfg.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Prefix))
		}
		if cfg.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.TTL))
		}
		store := redis.New(cfg.Addr, cfg.Password, cfg.DB, opts...)
		var locker ports.DistributedLocker
		if cfg.Lock {
			prefix := cfg.Prefix
			if prefix == "" {
				prefix = redis.DefaultPrefix
			}
			locker = redis.NewLocker(store.Client(), prefix)
		}
		return store, locker, store.Close, nil

	case config.BackendBolt:
		store, err := bolt.Open(cfg.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, nil, store.Close, nil

	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, nil, store.Close, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
