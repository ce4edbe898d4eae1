package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/kozaktomas/photo-selector/internal/catalog"
	"github.com/kozaktomas/photo-selector/internal/config"
	"github.com/kozaktomas/photo-selector/internal/database"
	"github.com/kozaktomas/photo-selector/internal/export"
	"github.com/kozaktomas/photo-selector/internal/gallery"
	"github.com/kozaktomas/photo-selector/internal/logging"
	"github.com/kozaktomas/photo-selector/internal/selection"
)

// app holds what the selection commands share: configuration, the opened
// storage and a controller with the persisted selections loaded.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	kv     database.KVStore
	ctrl   *gallery.Controller
	meta   export.Meta
}

// newApp loads configuration, opens the storage backend and restores the
// selection map. Logs go to logOut.
func newApp(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	logger := logging.New(logOut, level)

	cat, err := catalog.New(cfg.Event.TotalPhotos, cfg.Event.PhotoPattern)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	limits, err := selection.ParseLimits(cfg.Event.Limits)
	if err != nil {
		return nil, fmt.Errorf("parsing limits: %w", err)
	}
	meta, err := export.MetaFromEvent(cfg.Event)
	if err != nil {
		return nil, err
	}

	kv, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("storage opened", "backend", cfg.Storage.Backend, "key", cfg.Storage.Key)

	store := selection.NewStore(kv, cfg.Storage.Key, cat.Size(), logger)
	ctrl := gallery.New(cat, store, limits, logger)
	ctrl.Load(ctx)

	return &app{cfg: cfg, logger: logger, kv: kv, ctrl: ctrl, meta: meta}, nil
}

// Close releases the storage backend.
func (a *app) Close() {
	if err := a.kv.Close(); err != nil {
		a.logger.Warn("closing storage failed", "err", err)
	}
}
