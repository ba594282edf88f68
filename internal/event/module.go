package event

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/teratic/eventbridge/internal/container"
)

// Params are the dependencies of the fx-provided Dispatcher.
type Params struct {
	fx.In

	Logger      *zap.Logger         `optional:"true"`
	Resolver    container.Container `optional:"true"`
	Broadcaster Broadcaster         `optional:"true"`
	Options     []Option            `group:"event_options"`
}

// Module provides a *Dispatcher and discards pushed events on shutdown.
func Module() fx.Option {
	return fx.Module("event",
		fx.Provide(Provide),
		fx.Invoke(registerLifecycle),
	)
}

// Provide builds a Dispatcher from fx dependencies. Options supplied in the
// "event_options" group are applied last.
func Provide(p Params) *Dispatcher {
	opts := []Option{
		WithLogger(p.Logger),
		WithBroadcaster(p.Broadcaster),
	}
	if p.Resolver != nil {
		opts = append(opts, WithResolver(p.Resolver))
	}
	opts = append(opts, p.Options...)
	return New(opts...)
}

// AsOption annotates an Option constructor for the "event_options" group.
func AsOption(f any) any {
	return fx.Annotate(f, fx.ResultTags(`group:"event_options"`))
}

func registerLifecycle(lc fx.Lifecycle, d *Dispatcher) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			d.ForgetPushed()
			return nil
		},
	})
}
