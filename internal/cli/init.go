package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/archief/internal/logging"
	"github.com/mesh-intelligence/archief/internal/paths"
	"github.com/mesh-intelligence/archief/internal/site"
	"github.com/mesh-intelligence/archief/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend  string      `yaml:"backend"`
	Database string      `yaml:"database"`
	DataDir  string      `yaml:"data_dir,omitempty"`
	Listen   string      `yaml:"listen"`
	Log      logSection  `yaml:"log"`
	Site     siteSection `yaml:"site"`
}

type logSection struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type siteSection struct {
	Name       string `yaml:"name"`
	PageSize   int    `yaml:"page_size"`
	TitleField int64  `yaml:"title_field"`
}

func defaultConfigFile(dataDir string) configFile {
	return configFile{
		Backend:  types.BackendSQLite,
		Database: paths.DefaultDatabaseName,
		DataDir:  dataDir,
		Listen:   defaultListen,
		Log:      logSection{Level: "info", Format: logging.FormatJSON},
		Site: siteSection{
			Name:       site.DefaultSiteName,
			PageSize:   site.DefaultPageSize,
			TitleField: site.DefaultTitleField,
		},
	}
}

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and data directories",
		Long: "Create the configuration directory with a default config.yaml and the\n" +
			"data directory. An existing config.yaml is left untouched.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(flags)
			if err != nil {
				return sysError(err)
			}
			if err := os.MkdirAll(s.configDir, 0o755); err != nil {
				return sysError(fmt.Errorf("create config directory: %w", err))
			}
			if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
				return sysError(fmt.Errorf("create data directory: %w", err))
			}

			written, err := writeConfigIfMissing(s.configPath(), flags.dataDir, s.dataDir)
			if err != nil {
				return sysError(fmt.Errorf("write config: %w", err))
			}

			out := cmd.OutOrStdout()
			if written {
				fmt.Fprintf(out, "Wrote %s\n", s.configPath())
			} else {
				fmt.Fprintf(out, "Keeping existing %s\n", s.configPath())
			}
			fmt.Fprintf(out, "Data directory: %s\n", s.dataDir)
			if _, err := os.Stat(s.catalogueConfig().DSN); os.IsNotExist(err) {
				fmt.Fprintln(out, "No catalogue database yet; create one with 'archief seed --from <dir>'")
			}
			return nil
		},
	}
}

// writeConfigIfMissing creates config.yaml with default values. The data
// directory is recorded only when it was given explicitly. Reports whether
// the file was written.
func writeConfigIfMissing(path, dataDirFlag, dataDir string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	recorded := ""
	if dataDirFlag != "" {
		recorded = dataDir
	}
	data, err := yaml.Marshal(defaultConfigFile(recorded))
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
