package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/pathfinder/internal/catalog"
	"github.com/abhisek/pathfinder/internal/config"
	"github.com/abhisek/pathfinder/internal/explore"
	"github.com/abhisek/pathfinder/internal/logging"
	"github.com/abhisek/pathfinder/internal/store"
)

// deps holds what every explorer command needs.
type deps struct {
	cfg    config.Config
	logger *zap.Logger
	store  *store.Store
}

// openDeps loads configuration, starts logging and opens the store.
func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &deps{cfg: cfg, logger: logger, store: st}, nil
}

func (d *deps) Close() {
	_ = d.logger.Sync()
	_ = d.store.Close()
}

// newController wires the configured data provider into a controller for
// the configured career.
func (d *deps) newController(opts ...explore.ControllerOption) (*explore.Controller, error) {
	provider, err := catalog.NewProvider(d.cfg.Catalog, d.store.EventRepo(), d.logger)
	if err != nil {
		return nil, err
	}
	orch := explore.NewOrchestrator(explore.NewCache(), provider,
		explore.WithLogger(d.logger),
		explore.WithFetchTimeout(d.cfg.FetchTimeout),
	)
	opts = append([]explore.ControllerOption{explore.WithAutoSelectFirst(d.cfg.AutoSelectFirst)}, opts...)
	return explore.NewController(orch, d.cfg.CareerID, opts...), nil
}
