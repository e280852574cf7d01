package cmd

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/abhisek/edusheet/internal/config"
	"github.com/abhisek/edusheet/internal/llm"
	"github.com/abhisek/edusheet/internal/logging"
	"github.com/abhisek/edusheet/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// env is what most commands need: resolved config, an open store and a
// logger.
type env struct {
	loader *config.Loader
	cfg    *config.Config
	store  *store.Store
	log    *logrus.Logger

	closers []io.Closer
}

// openEnv loads config, opens the store and applies settings saved in the
// store on top of the file and environment layers. CLI commands log to
// stderr.
func openEnv(cmd *cobra.Command) (*env, error) {
	return openEnvWith(cmd, func(opts logging.Options) (*logrus.Logger, io.Closer, error) {
		l, err := logging.New(opts, os.Stderr)
		return l, nil, err
	})
}

// openTUIEnv is openEnv with logs going to <data dir>/edusheet.log.
func openTUIEnv(cmd *cobra.Command) (*env, error) {
	return openEnvWith(cmd, func(opts logging.Options) (*logrus.Logger, io.Closer, error) {
		dir, err := store.DataDir()
		if err != nil {
			return nil, nil, err
		}
		return logging.NewFile(opts, filepath.Join(dir, "edusheet.log"))
	})
}

type loggerFactory func(logging.Options) (*logrus.Logger, io.Closer, error)

func openEnvWith(cmd *cobra.Command, newLogger loggerFactory) (*env, error) {
	configFile, _ := cmd.Flags().GetString("config")
	loader, err := config.NewLoader(config.Options{ConfigFile: configFile})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	base, err := loader.Config()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	if dbPath == "" {
		dbPath = base.DBPath
		if err := store.EnsureDir(dbPath); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	e := &env{loader: loader, store: st, closers: []io.Closer{st}}

	saved, err := st.KV().List(cmd.Context(), store.NamespaceConfig)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("read settings: %w", err)
	}
	// Keys restored from an older backup may no longer be settable.
	maps.DeleteFunc(saved, func(k, _ string) bool { return !slices.Contains(config.SettableKeys, k) })
	if err := loader.Apply(saved); err != nil {
		e.Close()
		return nil, fmt.Errorf("apply settings: %w", err)
	}
	if e.cfg, err = loader.Config(); err != nil {
		e.Close()
		return nil, fmt.Errorf("load config: %w", err)
	}
	e.cfg.DBPath = dbPath

	logger, closer, err := newLogger(logging.Options{Level: e.cfg.Log.Level, Format: e.cfg.Log.Format})
	if err != nil {
		e.Close()
		return nil, err
	}
	if closer != nil {
		e.closers = append(e.closers, closer)
	}
	e.log = logger
	return e, nil
}

// provider builds the configured LLM provider. The error explains which
// key is missing when none is configured.
func (e *env) provider(ctx context.Context) (llm.Provider, error) {
	return llm.NewProvider(ctx, e.cfg.LLMSettings(), e.store.EventRepo(), e.log)
}

// withTimeout bounds one LLM-backed command by llm.timeout.
func (e *env) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.cfg.LLM.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.cfg.LLM.Timeout)
}

func (e *env) Close() error {
	var first error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
