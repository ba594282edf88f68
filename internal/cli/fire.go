package cli

import (
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/teratic/eventbridge/internal/app"
)

func newFireCommand(root *rootOptions) *cobra.Command {
	var (
		payload string
		until   bool
		push    bool
	)

	cmd := &cobra.Command{
		Use:   "fire <event>",
		Short: "Fire an event through the loaded listeners",
		Long: `Fire dispatches an event to every listener registered for it, highest
priority first, and prints the collected responses.

The payload is JSON. An array is spread into one argument per element;
any other value is passed as a single argument.`,
		Example: `  eventbridge fire user.created --payload '["ada", 36]'
  eventbridge fire cache.lookup --payload '"user:1"' --until`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parsePayload(payload)
			if err != nil {
				return err
			}
			name := args[0]

			return root.withApp(cmd.Context(), func(a *app.Application) error {
				ctx := cmd.Context()
				d := a.Dispatcher()

				doc, _ := sjson.Set(`{}`, "event", name)
				switch {
				case push:
					d.Push(name, values...)
					if err := d.Flush(ctx, name); err != nil {
						return err
					}
					doc, err = sjson.Set(doc, "flushed", true)
				case until:
					resp, ferr := d.Until(ctx, name, values...)
					if ferr != nil {
						return ferr
					}
					doc, err = sjson.Set(doc, "response", resp)
				default:
					responses, ferr := d.Fire(ctx, name, values...)
					if ferr != nil {
						return ferr
					}
					doc, err = sjson.Set(doc, "responses", responses)
				}
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), doc)
			})
		},
	}

	cmd.Flags().StringVarP(&payload, "payload", "p", "", "JSON payload")
	cmd.Flags().BoolVar(&until, "until", false, "stop at the first non-null response and print it")
	cmd.Flags().BoolVar(&push, "push", false, "queue the payload and flush it instead of firing directly")
	cmd.MarkFlagsMutuallyExclusive("until", "push")
	return cmd
}
