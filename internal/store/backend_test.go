package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/archief/internal/store"
	"github.com/mesh-intelligence/archief/internal/store/storetest"
	"github.com/mesh-intelligence/archief/pkg/types"
)

func TestBackendAttach(t *testing.T) {
	tests := []struct {
		name    string
		config  func(t *testing.T) types.Config
		wantErr error
	}{
		{
			name: "seeded sqlite catalogue attaches",
			config: func(t *testing.T) types.Config {
				return types.Config{Backend: types.BackendSQLite, DSN: storetest.SeedFile(t)}
			},
		},
		{
			name: "missing sqlite file returns ErrCatalogueMissing",
			config: func(t *testing.T) types.Config {
				return types.Config{Backend: types.BackendSQLite, DSN: filepath.Join(t.TempDir(), "absent.db")}
			},
			wantErr: types.ErrCatalogueMissing,
		},
		{
			name: "invalid config is rejected",
			config: func(t *testing.T) types.Config {
				return types.Config{Backend: "oracle", DSN: "x"}
			},
			wantErr: types.ErrBackendUnknown,
		},
		{
			name: "empty DSN is rejected",
			config: func(t *testing.T) types.Config {
				return types.Config{Backend: types.BackendSQLite}
			},
			wantErr: types.ErrDSNEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := store.NewBackend()
			err := b.Attach(tt.config(t))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, b.Detach())
		})
	}
}

func TestBackendAttachTwice(t *testing.T) {
	b := storetest.NewCatalogue(t)
	err := b.Attach(types.Config{Backend: types.BackendSQLite, DSN: storetest.SeedFile(t)})
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestBackendDetach(t *testing.T) {
	b := storetest.NewCatalogue(t)
	ctx := context.Background()

	require.NoError(t, b.Detach())
	assert.NoError(t, b.Detach(), "Detach is idempotent")

	err := b.Read(ctx, func(types.Registry) error { return nil })
	assert.ErrorIs(t, err, types.ErrCatalogueDetached)

	_, err = b.LatestMessages(ctx, 10, 0)
	assert.ErrorIs(t, err, types.ErrCatalogueDetached)

	_, err = b.LoadMessage(ctx, 1)
	assert.ErrorIs(t, err, types.ErrCatalogueDetached)
}

func TestBackendReadPassesCallbackError(t *testing.T) {
	b := storetest.NewCatalogue(t)

	err := b.Read(context.Background(), func(types.Registry) error {
		return types.ErrObjectNotFound
	})
	assert.ErrorIs(t, err, types.ErrObjectNotFound)
}
