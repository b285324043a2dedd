package store

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrDatabaseExists is returned by Seed when the target database file is
// already present. Seed never modifies an existing catalogue.
var ErrDatabaseExists = errors.New("database already exists")

// fixtureTables maps JSONL export files to their tables and columns, in
// dependency order.
var fixtureTables = []struct {
	file    string
	table   string
	columns []string
}{
	{"collections.jsonl", collectionsTable, []string{"id", "name"}},
	{"object_types.jsonl", objectTypesTable, []string{"id", "name", "meta_layout"}},
	{"objects.jsonl", objectsTable, []string{"id", "collection", "index", "type"}},
	{"meta_fields.jsonl", metaFieldsTable, []string{"id", "name", "type"}},
	{"meta_values.jsonl", metaValuesTable, []string{"object_id", "field_id", "value"}},
	{"messages.jsonl", messagesTable, []string{"id", "title", "date", "author", "content"}},
}

// SeedReport summarizes a Seed run.
type SeedReport struct {
	Loaded  map[string]int `json:"loaded"`  // rows inserted per table
	Skipped int            `json:"skipped"` // malformed lines and rows rejected by constraints
}

// Seed creates a new SQLite catalogue at dbPath and loads the JSONL exports
// found in fixtureDir.
func Seed(dbPath, fixtureDir string) (SeedReport, error) {
	return SeedFS(dbPath, os.DirFS(fixtureDir))
}

// SeedFS creates a new SQLite catalogue at dbPath and loads the JSONL exports
// found at the root of fsys. Missing export files leave their table empty.
// Loading is transactional: on error no database file is left behind.
func SeedFS(dbPath string, fsys fs.FS) (SeedReport, error) {
	report := SeedReport{Loaded: make(map[string]int)}

	if _, err := os.Stat(dbPath); err == nil {
		return report, fmt.Errorf("%w: %s", ErrDatabaseExists, dbPath)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return report, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return report, fmt.Errorf("open database: %w", err)
	}

	if err := seedDB(db, fsys, &report); err != nil {
		db.Close()
		os.Remove(dbPath)
		return report, err
	}
	if err := db.Close(); err != nil {
		return report, fmt.Errorf("close database: %w", err)
	}
	return report, nil
}

func seedDB(db *sql.DB, fsys fs.FS, report *SeedReport) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, ddl := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := tx.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	for _, ft := range fixtureTables {
		records, skipped, err := readJSONL(fsys, ft.file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("reading %s: %w", ft.file, err)
		}
		report.Skipped += skipped

		loaded, rejected, err := insertRecords(tx, ft.table, ft.columns, records)
		if err != nil {
			return fmt.Errorf("loading %s into %s: %w", ft.file, ft.table, err)
		}
		report.Loaded[ft.table] = loaded
		report.Skipped += rejected
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}
	return nil
}

// insertRecords inserts parsed JSONL records into a table. Fields not listed
// in columns are ignored and missing fields are stored as NULL. Records that
// violate a constraint are skipped and counted.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) (int, int, error) {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = `"` + col + `"`
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return 0, 0, fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	loaded, rejected := 0, 0
	for _, rec := range records {
		var obj map[string]any
		dec := json.NewDecoder(bytes.NewReader(rec))
		dec.UseNumber()
		if err := dec.Decode(&obj); err != nil {
			rejected++
			continue
		}

		args := make([]any, len(columns))
		for i, col := range columns {
			args[i] = columnValue(obj[col])
		}

		if _, err := stmt.Exec(args...); err != nil {
			rejected++
			continue
		}
		loaded++
	}
	return loaded, rejected, nil
}

// columnValue converts a decoded JSON value into a driver argument. Integral
// numbers become int64 so they keep INTEGER affinity.
func columnValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return nil
		}
		return string(b)
	default:
		return val
	}
}
