package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/archief/internal/logging"
	"github.com/mesh-intelligence/archief/internal/paths"
	"github.com/mesh-intelligence/archief/internal/site"
	"github.com/mesh-intelligence/archief/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "ARCHIEF"
)

// Config keys.
const (
	cfgKeyBackend    = "backend"
	cfgKeyDatabase   = "database"
	cfgKeyDataDir    = "data_dir"
	cfgKeyListen     = "listen"
	cfgKeyLogLevel   = "log.level"
	cfgKeyLogFormat  = "log.format"
	cfgKeySiteName   = "site.name"
	cfgKeyPageSize   = "site.page_size"
	cfgKeyTitleField = "site.title_field"
)

const defaultListen = ":1953"

// settings is the resolved configuration of one command invocation.
type settings struct {
	v         *viper.Viper
	configDir string
	dataDir   string
}

// loadSettings reads config.yaml from the resolved config directory. A
// missing file is not an error; every key has a default and can be
// overridden through ARCHIEF_* environment variables (log.level becomes
// ARCHIEF_LOG_LEVEL).
func loadSettings(flags *rootFlags) (*settings, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyDatabase, paths.DefaultDatabaseName)
	v.SetDefault(cfgKeyListen, defaultListen)
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetDefault(cfgKeyLogFormat, logging.FormatJSON)
	v.SetDefault(cfgKeySiteName, site.DefaultSiteName)
	v.SetDefault(cfgKeyPageSize, site.DefaultPageSize)
	v.SetDefault(cfgKeyTitleField, site.DefaultTitleField)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	dataDir, err := paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	return &settings{v: v, configDir: configDir, dataDir: dataDir}, nil
}

// catalogueConfig returns the backend configuration. SQLite database names
// are resolved against the data directory; PostgreSQL takes the DSN as is.
func (s *settings) catalogueConfig() types.Config {
	backend := s.v.GetString(cfgKeyBackend)
	dsn := s.v.GetString(cfgKeyDatabase)
	if backend == types.BackendSQLite {
		dsn = paths.DatabasePath(s.dataDir, dsn)
	}
	return types.Config{Backend: backend, DSN: dsn}
}

func (s *settings) configPath() string {
	return filepath.Join(s.configDir, paths.ConfigFileName)
}

func (s *settings) siteOptions() site.Options {
	return site.Options{
		SiteName:   s.v.GetString(cfgKeySiteName),
		PageSize:   s.v.GetInt(cfgKeyPageSize),
		TitleField: s.v.GetInt64(cfgKeyTitleField),
	}
}

// reloadLogLevel returns the config change handler used while serving. Only
// log.level is applied live; other keys need a restart. The reload itself is
// logged without a level so it is never filtered.
func reloadLogLevel(v *viper.Viper, logger zerolog.Logger) func(fsnotify.Event) {
	return func(e fsnotify.Event) {
		level := logging.SetLevel(v.GetString(cfgKeyLogLevel))
		logger.Log().
			Str("file", e.Name).
			Str("op", e.Op.String()).
			Str("log_level", level.String()).
			Msg("configuration reloaded")
	}
}
