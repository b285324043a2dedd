package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/archief/internal/store/storetest"
	"github.com/mesh-intelligence/archief/pkg/types"
)

// readFixture runs fn against a snapshot of a fresh fixture catalogue.
func readFixture(t *testing.T, fn func(ctx context.Context, r types.Registry)) {
	t.Helper()
	b := storetest.NewCatalogue(t)
	ctx := context.Background()
	require.NoError(t, b.Read(ctx, func(r types.Registry) error {
		fn(ctx, r)
		return nil
	}))
}

func TestResolveCollection(t *testing.T) {
	readFixture(t, func(ctx context.Context, r types.Registry) {
		c, err := r.ResolveCollection(ctx, "paintings")
		require.NoError(t, err)
		assert.Equal(t, types.Collection{ID: 1, Name: "paintings"}, c)

		_, err = r.ResolveCollection(ctx, "nonexistent")
		assert.ErrorIs(t, err, types.ErrNotFound)

		_, err = r.ResolveCollection(ctx, "")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestCollections(t *testing.T) {
	readFixture(t, func(ctx context.Context, r types.Registry) {
		collections, err := r.Collections(ctx)
		require.NoError(t, err)

		names := make([]string, len(collections))
		for i, c := range collections {
			names[i] = c.Name
		}
		assert.Equal(t, []string{"paintings", "photographs", "prints"}, names)
	})
}

func TestLoadObject(t *testing.T) {
	tests := []struct {
		name         string
		collectionID int64
		index        int64
		want         types.CatalogObject
		wantErr      error
	}{
		{name: "first painting", collectionID: 1, index: 0, want: types.CatalogObject{ID: 1, CollectionID: 1, Index: 0, TypeID: 1}},
		{name: "last painting", collectionID: 1, index: 4, want: types.CatalogObject{ID: 5, CollectionID: 1, Index: 4, TypeID: 1}},
		{name: "non-contiguous index", collectionID: 2, index: 3, want: types.CatalogObject{ID: 7, CollectionID: 2, Index: 3, TypeID: 3}},
		{name: "index past the end", collectionID: 1, index: 99999, wantErr: types.ErrNotFound},
		{name: "gap in indices", collectionID: 2, index: 1, wantErr: types.ErrNotFound},
		{name: "empty collection", collectionID: 3, index: 0, wantErr: types.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readFixture(t, func(ctx context.Context, r types.Registry) {
				got, err := r.LoadObject(ctx, tt.collectionID, tt.index)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		})
	}
}

func TestLoadType(t *testing.T) {
	tests := []struct {
		name       string
		id         int64
		wantName   string
		wantLayout []int64
		wantErr    error
	}{
		{name: "ordered layout", id: 1, wantName: "painting", wantLayout: []int64{3, 1, 2}},
		{name: "short layout", id: 2, wantName: "print", wantLayout: []int64{1, 2}},
		{name: "empty token degrades to empty layout", id: 3, wantName: "sketch", wantLayout: []int64{}},
		{name: "empty string layout", id: 4, wantName: "fragment", wantLayout: []int64{}},
		{name: "NULL layout", id: 5, wantName: "loan", wantLayout: []int64{}},
		{name: "unknown type", id: 99, wantErr: types.ErrTypeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readFixture(t, func(ctx context.Context, r types.Registry) {
				got, err := r.LoadType(ctx, tt.id)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
					assert.True(t, types.IsIntegrity(err))
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tt.id, got.ID)
				assert.Equal(t, tt.wantName, got.Name)
				assert.Equal(t, tt.wantLayout, got.MetaLayout)
			})
		})
	}
}

func TestLoadField(t *testing.T) {
	readFixture(t, func(ctx context.Context, r types.Registry) {
		f, err := r.LoadField(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, types.MetaField{ID: 2, Name: "Year", Type: types.FieldTypeInt}, f)

		_, err = r.LoadField(ctx, 42)
		assert.ErrorIs(t, err, types.ErrFieldNotFound)
	})
}

func TestLoadFields(t *testing.T) {
	readFixture(t, func(ctx context.Context, r types.Registry) {
		fields, err := r.LoadFields(ctx, []int64{1, 3, 42})
		require.NoError(t, err)
		assert.Len(t, fields, 2, "unknown ids are left out")
		assert.Equal(t, "Title", fields[1].Name)
		assert.Equal(t, "Maker", fields[3].Name)

		empty, err := r.LoadFields(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}

func TestLoadMetaValues(t *testing.T) {
	readFixture(t, func(ctx context.Context, r types.Registry) {
		values, err := r.LoadMetaValues(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, values, 4)
		for _, v := range values {
			assert.Equal(t, int64(1), v.ObjectID)
		}

		nullValue, err := r.LoadMetaValues(ctx, 11)
		require.NoError(t, err)
		require.Len(t, nullValue, 2)
		byField := map[int64]string{}
		for _, v := range nullValue {
			byField[v.FieldID] = v.Value
		}
		assert.Equal(t, "", byField[5], "NULL value reads as empty string")

		none, err := r.LoadMetaValues(ctx, 12345)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestLatestObjects(t *testing.T) {
	readFixture(t, func(ctx context.Context, r types.Registry) {
		latest, err := r.LatestObjects(ctx, 3, 1)
		require.NoError(t, err)
		require.Len(t, latest, 3)

		assert.Equal(t, types.ObjectSummary{ObjectID: 11, Collection: "prints", Index: 9, Title: "On Loan"}, latest[0])
		assert.Equal(t, "prints_8", latest[1].Key())
		assert.Equal(t, int64(9), latest[2].ObjectID)

		none, err := r.LatestObjects(ctx, 0, 1)
		require.NoError(t, err)
		assert.Empty(t, none)

		_, err = r.LatestObjects(ctx, -1, 1)
		assert.ErrorIs(t, err, types.ErrInvalidLimit)
	})
}

func TestLoadMetaValuesInsertionOrder(t *testing.T) {
	readFixture(t, func(ctx context.Context, r types.Registry) {
		values, err := r.LoadMetaValues(ctx, 4)
		require.NoError(t, err)

		got := make([]string, len(values))
		for i, v := range values {
			got[i] = v.Value
		}
		assert.Equal(t, []string{"Self-portrait", "Self-portrait (duplicate row)", "Judith Leyster"}, got)
	})
}

func TestLatestObjectsRepeatedTitle(t *testing.T) {
	readFixture(t, func(ctx context.Context, r types.Registry) {
		latest, err := r.LatestObjects(ctx, 10, 1)
		require.NoError(t, err)
		require.Len(t, latest, 10)

		seen := map[string]bool{}
		for _, s := range latest {
			assert.False(t, seen[s.Key()], "%s listed twice", s.Key())
			seen[s.Key()] = true
		}
		assert.True(t, seen["paintings_1"], "oldest of the ten newest objects is listed")
		assert.False(t, seen["paintings_0"])

		for _, s := range latest {
			if s.Key() == "paintings_3" {
				assert.Equal(t, "Self-portrait", s.Title, "first title value wins")
			}
		}
	})
}

func TestCollectionStats(t *testing.T) {
	readFixture(t, func(ctx context.Context, r types.Registry) {
		stats, err := r.CollectionStats(ctx)
		require.NoError(t, err)

		assert.Equal(t, []types.CollectionStat{
			{ID: 1, Name: "paintings", Objects: 5},
			{ID: 3, Name: "photographs", Objects: 0},
			{ID: 2, Name: "prints", Objects: 6},
		}, stats)
	})
}

func TestLatestObjectsWithoutTitle(t *testing.T) {
	readFixture(t, func(ctx context.Context, r types.Registry) {
		latest, err := r.LatestObjects(ctx, 20, 1)
		require.NoError(t, err)

		for _, s := range latest {
			if s.ObjectID == 5 {
				assert.Empty(t, s.Title, "painting 4 has no Title value")
				return
			}
		}
		t.Fatal("object 5 missing from latest objects")
	})
}
