package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/archief/pkg/archief"
	"github.com/mesh-intelligence/archief/pkg/types"
)

// attachCatalogue loads the settings and attaches a catalogue. The caller
// must defer Detach on the returned catalogue.
func attachCatalogue(flags *rootFlags) (types.Catalogue, *settings, error) {
	s, err := loadSettings(flags)
	if err != nil {
		return nil, nil, sysError(err)
	}

	cfg := s.catalogueConfig()
	if err := cfg.Validate(); err != nil {
		return nil, nil, userError(fmt.Errorf("invalid configuration: %w", err))
	}

	cat := archief.NewCatalogue()
	if err := cat.Attach(cfg); err != nil {
		return nil, nil, sysError(fmt.Errorf("attach catalogue: %w", err))
	}
	return cat, s, nil
}

// writeJSON prints v as indented JSON.
func writeJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("encode output: %w", err))
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func writeMessageLine(w io.Writer, m types.Message) {
	fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", m.ID, m.Date, m.Author, m.Title)
}
