package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/mesh-intelligence/archief/pkg/types"
)

const (
	objectsTable = "objects"
	// indexColumn is quoted because INDEX is a reserved word.
	indexColumn = `"index"`
)

// LoadObject returns the object at index within the collection.
func (r *registry) LoadObject(ctx context.Context, collectionID, index int64) (types.CatalogObject, error) {
	var o types.CatalogObject
	err := r.get(ctx, &o, r.sb.
		Select("id", "collection", indexColumn, "type").
		From(objectsTable).
		Where(sq.Eq{"collection": collectionID, indexColumn: index}).
		Limit(1))
	if err != nil {
		if sqlscan.NotFound(err) {
			return types.CatalogObject{}, types.ErrNotFound
		}
		return types.CatalogObject{}, fmt.Errorf("loading object %d in collection %d: %w", index, collectionID, err)
	}
	return o, nil
}

// LatestObjects lists the newest objects with their collection name and the
// first value of titleField. The title is a scalar subquery so an object
// with repeated title values is still listed once.
func (r *registry) LatestObjects(ctx context.Context, limit int, titleField int64) ([]types.ObjectSummary, error) {
	if limit < 0 {
		return nil, types.ErrInvalidLimit
	}
	title := fmt.Sprintf("COALESCE((SELECT v.value FROM %s v WHERE v.object_id = o.id AND v.field_id = ? ORDER BY v.%s LIMIT 1), '') AS title",
		metaValuesTable, r.rowOrder)
	summaries := []types.ObjectSummary{}
	err := r.selectAll(ctx, &summaries, r.sb.
		Select("o.id AS id", "c.name AS collection", "o."+indexColumn+" AS "+indexColumn).
		Column(title, titleField).
		From(objectsTable+" o").
		Join(collectionsTable+" c ON c.id = o.collection").
		OrderBy("o.id DESC").
		Limit(uint64(limit)))
	if err != nil {
		return nil, fmt.Errorf("listing latest objects: %w", err)
	}
	return summaries, nil
}
