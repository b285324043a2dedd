package catalogue

import (
	"fmt"

	"github.com/mesh-intelligence/archief/pkg/types"
)

// fieldIDs returns the distinct field ids referenced by values, in first
// appearance order.
func fieldIDs(values []types.MetaValue) []int64 {
	seen := make(map[int64]bool, len(values))
	ids := make([]int64, 0, len(values))
	for _, v := range values {
		if seen[v.FieldID] {
			continue
		}
		seen[v.FieldID] = true
		ids = append(ids, v.FieldID)
	}
	return ids
}

// Enrich merges raw meta values with their field definitions into a mapping
// keyed by field id. When an object carries several values for one field the
// first one wins. A value whose field is missing from fields is an integrity
// error wrapping types.ErrFieldNotFound.
func Enrich(values []types.MetaValue, fields map[int64]types.MetaField) (map[int64]types.MetaEntry, error) {
	meta := make(map[int64]types.MetaEntry, len(values))
	for _, v := range values {
		if _, dup := meta[v.FieldID]; dup {
			continue
		}
		f, ok := fields[v.FieldID]
		if !ok {
			return nil, fmt.Errorf("%w: id %d referenced by object %d", types.ErrFieldNotFound, v.FieldID, v.ObjectID)
		}
		meta[v.FieldID] = types.MetaEntry{Name: f.Name, Type: f.Type, Value: v.Value}
	}
	return meta, nil
}
