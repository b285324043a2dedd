package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/archief/pkg/archief"
)

const modulePath = "github.com/mesh-intelligence/archief"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the archief version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "archief v%s\nmodule: %s\n", archief.Version, modulePath)
			return nil
		},
	}
}
