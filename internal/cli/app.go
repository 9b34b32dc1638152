package cli

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/jbonatakis/skinwell/internal/config"
	"github.com/jbonatakis/skinwell/internal/logging"
	"github.com/jbonatakis/skinwell/internal/store"
)

// app carries what every command shares: output streams, the resolved
// config, the logger and a lazily opened store.
type app struct {
	out    io.Writer
	errOut io.Writer

	projectRoot string
	dbOverride  string

	cfg    config.ResolvedConfig
	logger *zap.Logger
	store  *store.Store
}

func newApp(out, errOut io.Writer) *app {
	return &app{out: out, errOut: errOut, logger: zap.NewNop()}
}

func (a *app) setup() error {
	if a.projectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
		a.projectRoot = wd
	}
	cfg, err := config.LoadConfig(a.projectRoot)
	if err != nil {
		return err
	}
	if a.dbOverride != "" {
		cfg.Store.Path = a.dbOverride
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *app) openStore() (*store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	st, err := store.Open(a.cfg.Store.Path, a.logger)
	if err != nil {
		return nil, err
	}
	a.store = st
	return st, nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("close store", zap.Error(err))
		}
		a.store = nil
	}
	_ = a.logger.Sync()
}
