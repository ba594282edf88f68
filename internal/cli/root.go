// Package cli implements the eventbridge command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/teratic/eventbridge/internal/app"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	scripts    []string

	// logger replaces the configured logger when set.
	logger *zap.Logger

	// fxOptions are appended to the application graph.
	fxOptions []fx.Option
}

// Execute runs the command line and returns the process exit code.
func Execute(version string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCommand(version).ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

// NewRootCommand builds the eventbridge command tree.
func NewRootCommand(version string) *cobra.Command {
	return newRootCommand(version, &rootOptions{})
}

func newRootCommand(version string, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eventbridge",
		Short: "Priority event bus with Lua listeners",
		Long: `eventbridge loads Lua listener scripts into a priority event dispatcher
backed by a delegating service registry, then fires events through them.

Scripts register listeners with events.listen and read registry entries
with registry.get. Configuration is read from eventbridge.yaml and
EVENTBRIDGE_* environment variables.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"config file (default: ./eventbridge.yaml or ~/.config/eventbridge/eventbridge.yaml)")
	cmd.PersistentFlags().StringSliceVarP(&opts.scripts, "script", "s", nil,
		"additional Lua script, directory or glob to load (repeatable)")

	cmd.AddCommand(
		newFireCommand(opts),
		newListenersCommand(opts),
		newEntriesCommand(opts),
	)
	return cmd
}

// withApp starts the application for the duration of fn. A failure to
// stop is joined to fn's error.
func (o *rootOptions) withApp(ctx context.Context, fn func(*app.Application) error) (err error) {
	a, err := app.New(app.Options{
		ConfigPath: o.configPath,
		Scripts:    o.scripts,
		Logger:     o.logger,
		FxOptions:  o.fxOptions,
	})
	if err != nil {
		return err
	}
	if err := a.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if stopErr := a.Stop(context.WithoutCancel(ctx)); stopErr != nil {
			err = errors.Join(err, fmt.Errorf("stop: %w", stopErr))
		}
	}()

	return fn(a)
}
