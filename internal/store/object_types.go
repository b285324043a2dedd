package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/mesh-intelligence/archief/pkg/types"
)

const objectTypesTable = "object_types"

// objectTypeRow is the stored shape of an object type; meta_layout is kept
// raw until parsed.
type objectTypeRow struct {
	ID         int64          `db:"id"`
	Name       string         `db:"name"`
	MetaLayout sql.NullString `db:"meta_layout"`
}

// LoadType returns the object type with the given id. A NULL or malformed
// meta_layout yields an empty layout.
func (r *registry) LoadType(ctx context.Context, id int64) (types.ObjectType, error) {
	var row objectTypeRow
	err := r.get(ctx, &row, r.sb.
		Select("id", "name", "meta_layout").
		From(objectTypesTable).
		Where(sq.Eq{"id": id}))
	if err != nil {
		if sqlscan.NotFound(err) {
			return types.ObjectType{}, fmt.Errorf("%w: id %d", types.ErrTypeNotFound, id)
		}
		return types.ObjectType{}, fmt.Errorf("loading object type %d: %w", id, err)
	}
	return types.ObjectType{
		ID:         row.ID,
		Name:       row.Name,
		MetaLayout: types.ParseLayout(row.MetaLayout.String),
	}, nil
}
