package cli

import (
	"sort"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/teratic/eventbridge/internal/app"
	"github.com/teratic/eventbridge/internal/event"
)

func newListenersCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "listeners [event]",
		Short: "List registered listeners in dispatch order",
		Long: `Listeners prints the listeners an event would reach, in the order they
would run, including those registered under matching wildcard patterns.
Without an event it prints every registered name and pattern.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.withApp(cmd.Context(), func(a *app.Application) error {
				d := a.Dispatcher()

				var (
					doc string
					err error
				)
				if len(args) == 1 {
					doc, err = listenerDoc(args[0], d.Listeners(args[0]))
				} else {
					doc, err = allListenersDoc(d.AllListeners())
				}
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), doc)
			})
		},
	}
}

func listenerDoc(name string, regs []*event.Registration) (string, error) {
	doc, err := sjson.Set(`{"listeners":[]}`, "event", name)
	if err != nil {
		return "", err
	}
	for _, reg := range regs {
		entry, _ := sjson.Set(`{}`, "priority", reg.Priority())
		entry, _ = sjson.Set(entry, "kind", reg.Kind().String())
		entry, _ = sjson.Set(entry, "listener", describe(reg))
		if reg.Name() != name {
			entry, _ = sjson.Set(entry, "pattern", reg.Name())
		}
		doc, err = sjson.SetRaw(doc, "listeners.-1", entry)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

func allListenersDoc(all map[string][]*event.Registration) (string, error) {
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	doc := `{"events":[]}`
	for _, name := range names {
		entry, err := listenerDoc(name, all[name])
		if err != nil {
			return "", err
		}
		doc, err = sjson.SetRaw(doc, "events.-1", entry)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}
