package types

import "context"

// Registry is a consistent read-only view of the catalogue. A Registry is
// only valid inside the Catalogue.Read callback that produced it.
type Registry interface {
	// ResolveCollection returns the collection with the given unique name.
	// Returns ErrNotFound if no collection has that name.
	ResolveCollection(ctx context.Context, name string) (Collection, error)

	// Collections returns all collections ordered by name.
	Collections(ctx context.Context) ([]Collection, error)

	// LoadObject returns the object at index within the collection.
	// Returns ErrNotFound if no object matches.
	LoadObject(ctx context.Context, collectionID, index int64) (CatalogObject, error)

	// LoadType returns the object type with the given id.
	// Returns ErrTypeNotFound if the id does not exist.
	LoadType(ctx context.Context, id int64) (ObjectType, error)

	// LoadField returns the meta field with the given id.
	// Returns ErrFieldNotFound if the id does not exist.
	LoadField(ctx context.Context, id int64) (MetaField, error)

	// LoadFields returns the meta fields with the given ids in one query.
	// Unknown ids are absent from the result.
	LoadFields(ctx context.Context, ids []int64) (map[int64]MetaField, error)

	// LoadMetaValues returns every meta value of the object in insertion
	// order, so the first of several values for one field is stable.
	LoadMetaValues(ctx context.Context, objectID int64) ([]MetaValue, error)

	// LatestObjects returns up to limit distinct objects, newest first,
	// titled with the first value of titleField (empty when the object has
	// none).
	LatestObjects(ctx context.Context, limit int, titleField int64) ([]ObjectSummary, error)

	// CollectionStats counts the objects of every collection, ordered by
	// collection name. Empty collections are included.
	CollectionStats(ctx context.Context) ([]CollectionStat, error)
}

// MessageStore reads the news feed.
type MessageStore interface {
	// LatestMessages returns up to limit messages after skipping offset,
	// ordered by id descending.
	LatestMessages(ctx context.Context, limit, offset int) ([]Message, error)

	// LoadMessage returns the message with the given id.
	// Returns ErrNotFound if it does not exist.
	LoadMessage(ctx context.Context, id int64) (Message, error)
}

// Catalogue is the backend-agnostic entry point to a catalogue store.
// Callers attach to a backend, read through snapshots, and detach when done.
type Catalogue interface {
	MessageStore

	// Attach connects to the store described by config. Returns
	// ErrAlreadyAttached if called while attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	// Read runs fn against one read-only snapshot of the catalogue.
	// Returns ErrCatalogueDetached when not attached.
	Read(ctx context.Context, fn func(Registry) error) error
}
