package types

import "errors"

// Config holds backend selection and connection parameters for
// Catalogue.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	// DSN is the SQLite database file path or the PostgreSQL connection string.
	DSN string `json:"dsn" yaml:"dsn"`
}

// Supported backend names.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrDSNEmpty       = errors.New("database location must not be empty")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite:   true,
	BackendPostgres: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.DSN == "" {
		return ErrDSNEmpty
	}
	return nil
}
