package cli

import (
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/teratic/eventbridge/internal/app"
)

func newEntriesCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "entries",
		Short: "List the entries bound in the root registry",
		Long: `Entries prints every key bound in the root registry, sorted, with its
resolved value. A value that fails to resolve is printed as its error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return root.withApp(cmd.Context(), func(a *app.Application) error {
				r := a.Registry()

				doc := `{"entries":[]}`
				for _, key := range r.Keys() {
					entry, _ := sjson.Set(`{}`, "key", key)
					v, err := r.Get(key)
					if err != nil {
						entry, _ = sjson.Set(entry, "error", err.Error())
					} else if entry, err = sjson.Set(entry, "value", v); err != nil {
						return err
					}
					if doc, err = sjson.SetRaw(doc, "entries.-1", entry); err != nil {
						return err
					}
				}
				return writeJSON(cmd.OutOrStdout(), doc)
			})
		},
	}
}
