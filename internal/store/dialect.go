package store

import (
	"database/sql"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/archief/pkg/types"
)

// dialect captures what differs between the supported databases.
type dialect struct {
	name        string
	driver      string
	placeholder sq.PlaceholderFormat
	txOptions   *sql.TxOptions
	// rowOrder is the hidden column that orders rows of tables without a
	// primary key by insertion.
	rowOrder string
}

// SQLite read-only mode is enforced by the connection string, so its
// transactions need no options.
var dialects = map[string]dialect{
	types.BackendSQLite: {
		name:        types.BackendSQLite,
		driver:      "sqlite",
		placeholder: sq.Question,
		txOptions:   &sql.TxOptions{},
		rowOrder:    "rowid",
	},
	types.BackendPostgres: {
		name:        types.BackendPostgres,
		driver:      "pgx",
		placeholder: sq.Dollar,
		txOptions:   &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true},
		rowOrder:    "ctid",
	},
}

func dialectFor(backend string) (dialect, error) {
	d, ok := dialects[backend]
	if !ok {
		return dialect{}, types.ErrBackendUnknown
	}
	return d, nil
}

// builder returns a squirrel statement builder using the dialect's
// placeholder format.
func (d dialect) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.placeholder)
}

// dsn converts the configured database location into a driver DSN.
func (d dialect) dsn(location string) string {
	if d.name == types.BackendSQLite {
		return "file:" + filepath.ToSlash(location) + "?mode=ro"
	}
	return location
}
