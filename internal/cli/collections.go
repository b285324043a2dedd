package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/archief/internal/catalogue"
)

func newCollectionsCmd(flags *rootFlags) *cobra.Command {
	var counts bool

	cmd := &cobra.Command{
		Use:   "collections",
		Short: "List the collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, _, err := attachCatalogue(flags)
			if err != nil {
				return err
			}
			defer cat.Detach()

			resolver := catalogue.NewResolver(cat, zerolog.Nop())
			if counts {
				stats, err := resolver.Stats(cmd.Context())
				if err != nil {
					return sysError(err)
				}
				if flags.jsonMode {
					return writeJSON(cmd, stats)
				}
				for _, c := range stats {
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d\n", c.ID, c.Name, c.Objects)
				}
				return nil
			}

			collections, err := resolver.Collections(cmd.Context())
			if err != nil {
				return sysError(err)
			}

			if flags.jsonMode {
				return writeJSON(cmd, collections)
			}
			for _, c := range collections {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", c.ID, c.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&counts, "counts", false, "include the number of objects per collection")
	return cmd
}
