package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/archief/internal/store"
	"github.com/mesh-intelligence/archief/pkg/types"
)

func newSeedCmd(flags *rootFlags) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Build a new SQLite catalogue from JSONL exports",
		Long: "Create the configured SQLite catalogue database from a directory of JSONL\n" +
			"exports (collections, object_types, objects, meta_fields, meta_values,\n" +
			"messages). An existing database is never overwritten.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(flags)
			if err != nil {
				return sysError(err)
			}
			cfg := s.catalogueConfig()
			if cfg.Backend != types.BackendSQLite {
				return userError(fmt.Errorf("seed only builds sqlite catalogues, configured backend is %q", cfg.Backend))
			}

			report, err := store.Seed(cfg.DSN, from)
			if errors.Is(err, store.ErrDatabaseExists) {
				return userError(err)
			}
			if err != nil {
				return sysError(fmt.Errorf("seed %s: %w", cfg.DSN, err))
			}

			out := cmd.OutOrStdout()
			if flags.jsonMode {
				return writeJSON(cmd, report)
			}
			tables := make([]string, 0, len(report.Loaded))
			for table := range report.Loaded {
				tables = append(tables, table)
			}
			sort.Strings(tables)
			for _, table := range tables {
				fmt.Fprintf(out, "%s: %d\n", table, report.Loaded[table])
			}
			fmt.Fprintf(out, "skipped: %d\n", report.Skipped)
			fmt.Fprintf(out, "Catalogue written to %s\n", cfg.DSN)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "directory holding the JSONL exports")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}
