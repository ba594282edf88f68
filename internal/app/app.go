// Package app wires the event bridge together and manages its lifecycle.
package app

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/teratic/eventbridge/internal/config"
	"github.com/teratic/eventbridge/internal/container"
	"github.com/teratic/eventbridge/internal/event"
	"github.com/teratic/eventbridge/internal/plugin/lua"
)

// Application is the running event bridge: a root container, a dispatcher
// resolving listeners from it, and the Lua scripts registered on it.
type Application struct {
	fx *fx.App

	config     *config.Config
	logger     *zap.Logger
	registry   *container.Registry
	dispatcher *event.Dispatcher
	host       *lua.Host

	running atomic.Bool
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty searches the
	// default locations.
	ConfigPath string

	// Scripts are loaded after the configured script paths.
	Scripts []string

	// Logger replaces the logger built from configuration.
	Logger *zap.Logger

	// FxOptions are appended to the application graph.
	FxOptions []fx.Option
}

// New loads configuration and builds the application without starting it.
func New(opts Options) (*Application, error) {
	var cfgOpts []config.Option
	if opts.ConfigPath != "" {
		cfgOpts = append(cfgOpts, config.WithConfigFile(opts.ConfigPath))
	}
	cfg, err := config.Load(cfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}
	if len(opts.Scripts) > 0 {
		cfg.Set(config.KeyScriptPaths, append(cfg.Scripts().Paths, opts.Scripts...))
	}

	logger := opts.Logger
	if logger == nil {
		logger, err = NewLogger(cfg.Logging())
		if err != nil {
			return nil, err
		}
	}

	a := &Application{config: cfg, logger: logger}
	graph := append([]fx.Option{
		Module(cfg, logger),
		fx.Populate(&a.registry, &a.dispatcher, &a.host),
	}, opts.FxOptions...)

	a.fx = fx.New(graph...)
	if err := a.fx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}
	return a, nil
}

// Start loads the configured scripts.
func (a *Application) Start(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	if err := a.fx.Start(ctx); err != nil {
		a.running.Store(false)
		return err
	}
	a.logger.Debug("application started", zap.Strings("scripts", a.host.Scripts()))
	return nil
}

// Stop unloads scripts and discards pushed events.
func (a *Application) Stop(ctx context.Context) error {
	if !a.running.CompareAndSwap(true, false) {
		return ErrNotRunning
	}
	err := a.fx.Stop(ctx)
	_ = a.logger.Sync()
	return err
}

// IsRunning reports whether Start has succeeded and Stop not yet been called.
func (a *Application) IsRunning() bool {
	return a.running.Load()
}

// Config returns the loaded configuration.
func (a *Application) Config() *config.Config { return a.config }

// Logger returns the application logger.
func (a *Application) Logger() *zap.Logger { return a.logger }

// Registry returns the root container.
func (a *Application) Registry() *container.Registry { return a.registry }

// Dispatcher returns the event dispatcher.
func (a *Application) Dispatcher() *event.Dispatcher { return a.dispatcher }

// Host returns the script host.
func (a *Application) Host() *lua.Host { return a.host }
