// Package archief is the public entry point to an archief catalogue. It
// exposes the backend factory while keeping the store internal.
//
// Example:
//
//	cat := archief.NewCatalogue()
//	err := cat.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DSN:     ".archief-db/archief.db",
//	})
//	defer cat.Detach()
package archief

import (
	"github.com/mesh-intelligence/archief/internal/store"
	"github.com/mesh-intelligence/archief/pkg/types"
)

// Version is the release of the archief module.
const Version = "0.3.0"

// NewCatalogue creates a detached catalogue. Call Attach with a Config to
// connect it to a SQLite file or a PostgreSQL database.
func NewCatalogue() types.Catalogue {
	return store.NewBackend()
}
