package app

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/teratic/eventbridge/internal/config"
	"github.com/teratic/eventbridge/internal/container"
	"github.com/teratic/eventbridge/internal/event"
	"github.com/teratic/eventbridge/internal/plugin/lua"
)

// Module wires the root container, the dispatcher and the script host.
func Module(cfg *config.Config, logger *zap.Logger) fx.Option {
	return fx.Options(
		fx.Supply(cfg, logger),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			fl := &fxevent.ZapLogger{Logger: l.Named("fx")}
			fl.UseLogLevel(zapcore.DebugLevel)
			return fl
		}),
		fx.Provide(
			NewRegistry,
			func(r *container.Registry) container.Container { return r },
			event.AsOption(func(c *config.Config) event.Option {
				return event.WithCacheSize(c.Events().SortedCacheSize)
			}),
			NewHost,
		),
		event.Module(),
		fx.Invoke(func(*lua.Host) {}),
	)
}

// NewRegistry builds the root container seeded with the configured values.
func NewRegistry(cfg *config.Config, logger *zap.Logger) *container.Registry {
	r := container.NewRegistry(container.WithLogger(logger.Named("container")))
	r.SetAll(cfg.Registry().Values)
	return r
}

// NewHost builds the script host. Configured scripts load on start and the
// host closes on stop, removing every listener its scripts registered.
func NewHost(lc fx.Lifecycle, cfg *config.Config, d *event.Dispatcher, r *container.Registry, logger *zap.Logger) *lua.Host {
	scripts := cfg.Scripts()
	h := lua.NewHost(d,
		lua.WithResolver(r),
		lua.WithLogger(logger.Named("lua")),
		lua.WithStateOptions(lua.WithExecutionTimeout(scripts.Timeout)),
	)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return h.LoadPaths(ctx, scripts.Paths...)
		},
		OnStop: func(context.Context) error {
			return h.Close()
		},
	})
	return h
}
