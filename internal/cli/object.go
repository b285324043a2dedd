package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/archief/internal/catalogue"
)

func newObjectCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "object <key>",
		Short: "Resolve a catalogue key and print the object",
		Long: "Resolve a catalogue key of the form <collection>_<index> and print the\n" +
			"object's fields in layout order, followed by fields outside the layout.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, _, err := attachCatalogue(flags)
			if err != nil {
				return err
			}
			defer cat.Detach()

			obj, err := catalogue.NewResolver(cat, zerolog.Nop()).Resolve(cmd.Context(), args[0])
			if err != nil {
				return lookupError(err)
			}

			if flags.jsonMode {
				return writeJSON(cmd, obj)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", obj.Key(), obj.TypeName)
			for _, e := range obj.Ordered() {
				fmt.Fprintf(out, "  %s: %s\n", e.Name, e.Value)
			}
			if extra := obj.Unlisted(); len(extra) > 0 {
				fmt.Fprintln(out, "  --")
				for _, e := range extra {
					fmt.Fprintf(out, "  %s: %s\n", e.Name, e.Value)
				}
			}
			return nil
		},
	}
}
