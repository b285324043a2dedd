package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/mesh-intelligence/archief/pkg/types"
)

const metaValuesTable = "meta_values"

// LoadMetaValues returns every meta value attached to the object in
// insertion order. NULL values are read as the empty string.
func (r *registry) LoadMetaValues(ctx context.Context, objectID int64) ([]types.MetaValue, error) {
	values := []types.MetaValue{}
	err := r.selectAll(ctx, &values, r.sb.
		Select("object_id", "field_id", "COALESCE(value, '') AS value").
		From(metaValuesTable).
		Where(sq.Eq{"object_id": objectID}).
		OrderBy(r.rowOrder))
	if err != nil {
		return nil, fmt.Errorf("loading meta values of object %d: %w", objectID, err)
	}
	return values, nil
}
