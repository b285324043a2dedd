// Package storetest provides a seeded SQLite catalogue for tests.
//
// The fixture catalogue holds three collections:
//
//	paintings    indices 0-4, type "painting" (layout 3,1,2)
//	prints       indices 0,3,5,7,8,9 with broken layouts, a dangling type
//	             (index 7) and a dangling meta field (index 8)
//	photographs  empty
//
// and 25 messages with ids 1-25.
package storetest

import (
	"embed"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/archief/internal/store"
	"github.com/mesh-intelligence/archief/pkg/types"
)

//go:embed fixtures/*.jsonl
var fixtures embed.FS

// Fixture counts.
const (
	MessageCount   = 25
	PaintingsCount = 5
)

// Fixtures returns the JSONL exports of the fixture catalogue.
func Fixtures() fs.FS {
	sub, err := fs.Sub(fixtures, "fixtures")
	if err != nil {
		panic(err)
	}
	return sub
}

// SeedFile writes the fixture catalogue to a new SQLite file in a temporary
// directory and returns its path.
func SeedFile(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archief.db")
	_, err := store.SeedFS(path, Fixtures())
	require.NoError(t, err)
	return path
}

// NewCatalogue returns a backend attached to a freshly seeded fixture
// catalogue. The backend is detached when the test ends.
func NewCatalogue(t testing.TB) *store.Backend {
	t.Helper()
	b := store.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DSN: SeedFile(t)}))
	t.Cleanup(func() { b.Detach() })
	return b
}
