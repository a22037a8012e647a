// Package app wires configuration, storage, the run log and the engine
// together for the entry points.
package app

import (
	"fmt"

	"github.com/tatianab/delve/internal/config"
	"github.com/tatianab/delve/internal/engine"
	"github.com/tatianab/delve/internal/runlog"
	"github.com/tatianab/delve/internal/store"
	"go.uber.org/zap"
)

// App is a ready engine and the resources behind it.
type App struct {
	Config config.Config
	Engine *engine.Engine
	Store  *store.Store
	Log    *zap.Logger
}

// Open builds the engine described by cfg. The run log is optional: when its
// directory cannot be created the failure is logged and runs go unrecorded.
func Open(cfg config.Config, log *zap.Logger, opts ...engine.Option) (*App, error) {
	s, err := store.Open(cfg.Store, cfg.DataDir, cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	log.Debug("store opened", zap.String("kind", cfg.Store), zap.String("dir", cfg.DataDir))

	base := []engine.Option{
		engine.WithLogger(log),
		engine.WithMaxDepth(cfg.MaxDepth),
	}
	if runs, err := runlog.OpenDefault(); err != nil {
		log.Warn("run log unavailable", zap.Error(err))
	} else {
		base = append(base, engine.WithRunLog(runs))
	}

	return &App{
		Config: cfg,
		Engine: engine.New(s, cfg.Seed, append(base, opts...)...),
		Store:  s,
		Log:    log,
	}, nil
}

// Close flushes the logger and releases the store.
func (a *App) Close() error {
	_ = a.Log.Sync()
	return a.Store.Close()
}
