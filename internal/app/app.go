// Package app wires configuration into the store, backend and auth flow used
// by the CLI and the server.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/groovematch/internal/auth"
	"github.com/mmynk/groovematch/internal/backend"
	"github.com/mmynk/groovematch/internal/config"
	"github.com/mmynk/groovematch/internal/docstore"
	"github.com/mmynk/groovematch/internal/metrics"
	"github.com/mmynk/groovematch/internal/netsim"
	"github.com/mmynk/groovematch/internal/storage"
	"github.com/mmynk/groovematch/internal/storage/memory"
	"github.com/mmynk/groovematch/internal/storage/redis"
	"github.com/mmynk/groovematch/internal/storage/sealed"
	"github.com/mmynk/groovematch/internal/storage/sqlite"
)

// App is the assembled client or server.
type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	// KV is the device storage. It holds the session token, and the
	// document too when running locally.
	KV storage.KV
	// Store is nil when a remote server is configured.
	Store *docstore.Store
	// JWT is nil unless a session secret is configured.
	JWT     *auth.JWTManager
	Backend backend.Backend
	Flow    *auth.Flow
}

// OpenKV opens the configured storage, sealed when a passphrase is set.
func OpenKV(ctx context.Context, cfg config.Config, logger *slog.Logger) (storage.KV, error) {
	var kv storage.KV
	switch cfg.Storage {
	case config.StorageMemory:
		kv = memory.New()
	case config.StorageRedis:
		r, err := redis.Dial(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		kv = r
		logger.Debug("Storage initialized", "backend", "redis", "addr", cfg.RedisAddr)
	default:
		s, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		kv = s
		logger.Debug("Storage initialized", "backend", "sqlite", "database", cfg.DBPath)
	}

	if cfg.Passphrase == "" {
		return kv, nil
	}
	s, err := sealed.Open(ctx, kv, []byte(cfg.Passphrase), sealed.DefaultKDFParams())
	if err != nil {
		kv.Close()
		return nil, fmt.Errorf("failed to open sealed storage: %w", err)
	}
	return s, nil
}

// New builds an App. Close releases its storage.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, m *metrics.Metrics) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	kv, err := OpenKV(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: m,
		KV:      kv,
	}
	if cfg.SessionSecret != "" {
		a.JWT = auth.NewJWTManager(cfg.SessionSecret, cfg.SessionTTL)
	}

	if cfg.RemoteURL != "" {
		a.Backend = backend.NewRemote(nil, cfg.RemoteURL)
		logger.Debug("Using remote backend", "url", cfg.RemoteURL)
	} else {
		a.Store = docstore.New(kv, a.storeOptions()...)
		a.Backend = backend.NewLocal(a.Store, a.simulator(),
			backend.WithLogger(logger),
			backend.WithErrorRates(backend.ErrorRates{
				Auth:     cfg.AuthErrorRate,
				Favorite: cfg.FavoriteErrorRate,
			}),
		)
	}

	a.Flow = auth.NewFlow(a.Backend, auth.NewTokenStore(kv),
		auth.WithFlowLogger(logger),
		auth.WithDemoAccount(cfg.DemoName, cfg.DemoEmail),
	)
	return a, nil
}

func (a *App) storeOptions() []docstore.Option {
	opts := []docstore.Option{
		docstore.WithLogger(a.Logger),
		docstore.WithMetrics(a.Metrics),
	}
	if a.JWT != nil {
		opts = append(opts, docstore.WithTokenSource(a.JWT))
	}
	if a.Config.StrictSaves {
		opts = append(opts, docstore.WithDurability(docstore.Strict))
	}
	return opts
}

func (a *App) simulator() *netsim.Simulator {
	sim := netsim.New()
	sim.MinLatency = a.Config.LatencyMin
	sim.MaxLatency = a.Config.LatencyMax
	sim.Logger = a.Logger
	sim.Metrics = a.Metrics
	return sim
}

// Close releases storage.
func (a *App) Close() error {
	if a.KV == nil {
		return nil
	}
	if err := a.KV.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return nil
}
