package archief_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/archief/pkg/archief"
	"github.com/mesh-intelligence/archief/pkg/types"
)

func TestNewCatalogueStartsDetached(t *testing.T) {
	cat := archief.NewCatalogue()

	_, err := cat.LatestMessages(context.Background(), 1, 0)
	require.ErrorIs(t, err, types.ErrCatalogueDetached)
	assert.NoError(t, cat.Detach())
}

func TestNewCatalogueMissingFile(t *testing.T) {
	cat := archief.NewCatalogue()
	err := cat.Attach(types.Config{
		Backend: types.BackendSQLite,
		DSN:     filepath.Join(t.TempDir(), "absent.db"),
	})
	require.ErrorIs(t, err, types.ErrCatalogueMissing)
}
