// Package bootstrap wires a configured store, sea and logger for the binaries.
package bootstrap

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"bubblesea/internal/adapters/filesystem"
	"bubblesea/internal/adapters/remote"
	"bubblesea/internal/adapters/sqlite"
	"bubblesea/internal/config"
	"bubblesea/internal/ports"
	"bubblesea/internal/sea"
)

// Runtime is everything a binary needs to work on the sea
type Runtime struct {
	Config *config.Config
	Logger *zap.Logger
	Sea    *sea.Sea

	// Store is the local store backing the sea; nil for the remote store
	Store ports.BubbleStore
}

// OpenStore opens the local store selected by cfg
func OpenStore(cfg *config.Config, logger *zap.Logger) (ports.BubbleStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Store {
	case config.StoreSQLite:
		return sqlite.Open(cfg.DB, logger.Named("sqlite"))
	case config.StoreDir:
		return filesystem.NewRepository(cfg.Dir, logger.Named("dir"))
	default:
		return nil, fmt.Errorf("store %q is not local", cfg.Store)
	}
}

// New builds a sea over the store selected by cfg. Local stores and the
// remote server serve both as the source of cache misses and as the
// write-through target.
func New(cfg *config.Config, logger *zap.Logger) (*Runtime, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	rt := &Runtime{Config: cfg, Logger: logger}

	var (
		source ports.RemoteSea
		sink   ports.BubbleSink
	)
	if cfg.Store == config.StoreRemote {
		client, err := remote.New(cfg.Remote, remote.WithLogger(logger.Named("remote")))
		if err != nil {
			return nil, err
		}
		source, sink = client, client
	} else {
		store, err := OpenStore(cfg, logger)
		if err != nil {
			return nil, err
		}
		rt.Store = store
		source, sink = store, store
	}

	rt.Sea = sea.New(sea.NewSnapshot(source),
		sea.WithSink(sink),
		sea.WithLogger(logger.Named("sea")),
	)
	logger.Debug("sea ready", zap.String("store", cfg.Store))
	return rt, nil
}

// Close releases the store
func (rt *Runtime) Close() error {
	var errs []error
	if rt.Store != nil {
		errs = append(errs, rt.Store.Close())
	}
	_ = rt.Logger.Sync()
	return errors.Join(errs...)
}
