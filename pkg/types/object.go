package types

import "sort"

// MetaEntry is a meta value enriched with its field's name and type.
type MetaEntry struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// FieldEntry pairs a MetaEntry with its field id for ordered views.
type FieldEntry struct {
	FieldID int64 `json:"field_id"`
	MetaEntry
}

// ResolvedObject is a catalogue object merged with its collection, type, and
// every meta value attached to it.
type ResolvedObject struct {
	ID         int64   `json:"id"`
	Collection string  `json:"collection"`
	Index      int64   `json:"index"`
	TypeID     int64   `json:"type_id"`
	TypeName   string  `json:"type_name"`
	Layout     []int64 `json:"layout"`
	// Meta holds every meta value of the object keyed by field id, including
	// fields that are not part of the type's layout.
	Meta map[int64]MetaEntry `json:"meta"`
}

// Key returns the external catalogue key of the object.
func (o *ResolvedObject) Key() string {
	return CatalogKey{Collection: o.Collection, Index: o.Index}.String()
}

// FieldIDs returns the ids present in Meta in ascending order.
func (o *ResolvedObject) FieldIDs() []int64 {
	ids := make([]int64, 0, len(o.Meta))
	for id := range o.Meta {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Value returns the value of the first field named name, scanning fields in
// ascending id order. The boolean is false when no field has that name.
func (o *ResolvedObject) Value(name string) (string, bool) {
	for _, id := range o.FieldIDs() {
		if e := o.Meta[id]; e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

// Ordered returns the layout entries that have a meta value, in layout
// order. Layout ids without a value are skipped.
func (o *ResolvedObject) Ordered() []FieldEntry {
	entries := make([]FieldEntry, 0, len(o.Layout))
	seen := make(map[int64]bool, len(o.Layout))
	for _, id := range o.Layout {
		e, ok := o.Meta[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		entries = append(entries, FieldEntry{FieldID: id, MetaEntry: e})
	}
	return entries
}

// Unlisted returns the meta values whose field is not part of the layout,
// in ascending field id order.
func (o *ResolvedObject) Unlisted() []FieldEntry {
	inLayout := make(map[int64]bool, len(o.Layout))
	for _, id := range o.Layout {
		inLayout[id] = true
	}
	var entries []FieldEntry
	for _, id := range o.FieldIDs() {
		if inLayout[id] {
			continue
		}
		entries = append(entries, FieldEntry{FieldID: id, MetaEntry: o.Meta[id]})
	}
	return entries
}
