// Package store implements read-only access to the catalogue database.
// SQLite (modernc.org/sqlite) and PostgreSQL (pgx) are supported through the
// same queries; only the placeholder format and transaction options differ.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/mesh-intelligence/archief/pkg/types"
)

var _ types.Catalogue = (*Backend)(nil)

// Backend implements types.Catalogue on top of database/sql.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	dialect  dialect
}

// NewBackend creates a new backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens the catalogue database described by config. SQLite databases
// are opened read-only and must already exist.
// Returns ErrAlreadyAttached if already attached and ErrCatalogueMissing if
// the SQLite file does not exist.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	d, err := dialectFor(config.Backend)
	if err != nil {
		return err
	}

	if config.Backend == types.BackendSQLite {
		if _, err := os.Stat(config.DSN); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%w: %s", types.ErrCatalogueMissing, config.DSN)
			}
			return fmt.Errorf("stat catalogue database: %w", err)
		}
	}

	db, err := sql.Open(d.driver, d.dsn(config.DSN))
	if err != nil {
		return fmt.Errorf("open catalogue database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("connect catalogue database: %w", err)
	}

	b.db = db
	b.config = config
	b.dialect = d
	b.attached = true
	return nil
}

// Detach closes the database connection. After Detach, all operations return
// ErrCatalogueDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// Read runs fn inside one read transaction so every lookup made through the
// registry observes the same snapshot of the catalogue. Errors returned by fn
// are passed through unchanged.
func (b *Backend) Read(ctx context.Context, fn func(types.Registry) error) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrCatalogueDetached
	}

	tx, err := b.db.BeginTx(ctx, b.dialect.txOptions)
	if err != nil {
		return fmt.Errorf("begin read transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&registry{q: tx, sb: b.dialect.builder(), rowOrder: b.dialect.rowOrder}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("end read transaction: %w", err)
	}
	return nil
}
