package types

// Meta field type tags. Interpretation of the raw value is left to the
// presentation layer; unknown tags are carried through unchanged.
const (
	FieldTypeText = "text"
	FieldTypeInt  = "int"
	FieldTypeDate = "date"
)

// Collection is a named grouping of catalogue objects.
type Collection struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// ObjectType classifies objects and declares the display order of their
// meta fields.
type ObjectType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	// MetaLayout lists field ids in display order. It may reference fields
	// the catalog does not know; those are skipped at display time.
	MetaLayout []int64 `json:"meta_layout"`
}

// CatalogObject is one object row. The pair (CollectionID, Index) is unique
// and forms the external catalogue key together with the collection name.
type CatalogObject struct {
	ID           int64 `db:"id" json:"id"`
	CollectionID int64 `db:"collection" json:"collection"`
	Index        int64 `db:"index" json:"index"`
	TypeID       int64 `db:"type" json:"type"`
}

// MetaField is a globally registered (name, type) pair.
type MetaField struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Type string `db:"type" json:"type"`
}

// MetaValue is one (object, field, raw value) fact.
type MetaValue struct {
	ObjectID int64  `db:"object_id" json:"object_id"`
	FieldID  int64  `db:"field_id" json:"field_id"`
	Value    string `db:"value" json:"value"`
}

// ObjectSummary is the short form of an object used in listings.
type ObjectSummary struct {
	ObjectID   int64  `db:"id" json:"id"`
	Collection string `db:"collection" json:"collection"`
	Index      int64  `db:"index" json:"index"`
	Title      string `db:"title" json:"title"`
}

// Key returns the external catalogue key of the summarized object.
func (s ObjectSummary) Key() string {
	return CatalogKey{Collection: s.Collection, Index: s.Index}.String()
}

// CollectionStat counts the objects held by one collection.
type CollectionStat struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Objects int64  `db:"objects" json:"objects"`
}
