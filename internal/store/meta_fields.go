package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/mesh-intelligence/archief/pkg/types"
)

const metaFieldsTable = "meta_fields"

// LoadField returns the meta field with the given id.
func (r *registry) LoadField(ctx context.Context, id int64) (types.MetaField, error) {
	var f types.MetaField
	err := r.get(ctx, &f, r.sb.
		Select("id", "name", "type").
		From(metaFieldsTable).
		Where(sq.Eq{"id": id}))
	if err != nil {
		if sqlscan.NotFound(err) {
			return types.MetaField{}, fmt.Errorf("%w: id %d", types.ErrFieldNotFound, id)
		}
		return types.MetaField{}, fmt.Errorf("loading meta field %d: %w", id, err)
	}
	return f, nil
}

// LoadFields returns the requested meta fields keyed by id in one query.
// Ids the catalog does not know are left out of the result.
func (r *registry) LoadFields(ctx context.Context, ids []int64) (map[int64]types.MetaField, error) {
	fields := make(map[int64]types.MetaField, len(ids))
	if len(ids) == 0 {
		return fields, nil
	}

	var rows []types.MetaField
	err := r.selectAll(ctx, &rows, r.sb.
		Select("id", "name", "type").
		From(metaFieldsTable).
		Where(sq.Eq{"id": ids}))
	if err != nil {
		return nil, fmt.Errorf("loading meta fields: %w", err)
	}
	for _, f := range rows {
		fields[f.ID] = f
	}
	return fields, nil
}
