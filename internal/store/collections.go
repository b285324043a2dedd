package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/mesh-intelligence/archief/pkg/types"
)

const collectionsTable = "collections"

// ResolveCollection looks up a collection by its unique name.
func (r *registry) ResolveCollection(ctx context.Context, name string) (types.Collection, error) {
	var c types.Collection
	err := r.get(ctx, &c, r.sb.
		Select("id", "name").
		From(collectionsTable).
		Where(sq.Eq{"name": name}).
		Limit(1))
	if err != nil {
		if sqlscan.NotFound(err) {
			return types.Collection{}, types.ErrNotFound
		}
		return types.Collection{}, fmt.Errorf("resolving collection %q: %w", name, err)
	}
	return c, nil
}

// Collections returns every collection ordered by name.
func (r *registry) Collections(ctx context.Context) ([]types.Collection, error) {
	collections := []types.Collection{}
	err := r.selectAll(ctx, &collections, r.sb.
		Select("id", "name").
		From(collectionsTable).
		OrderBy("name"))
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	return collections, nil
}

// CollectionStats counts objects per collection with a single grouped join.
func (r *registry) CollectionStats(ctx context.Context) ([]types.CollectionStat, error) {
	stats := []types.CollectionStat{}
	err := r.selectAll(ctx, &stats, r.sb.
		Select("c.id AS id", "c.name AS name", "COUNT(o.id) AS objects").
		From(collectionsTable+" c").
		LeftJoin(objectsTable+" o ON o.collection = c.id").
		GroupBy("c.id", "c.name").
		OrderBy("c.name"))
	if err != nil {
		return nil, fmt.Errorf("counting collection objects: %w", err)
	}
	return stats, nil
}
