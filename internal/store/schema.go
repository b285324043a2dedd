package store

// SQLite DDL for the catalogue tables. The site never writes to a catalogue;
// the schema is used by Seed to build development and test databases.
const (
	createCollections = `CREATE TABLE collections (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);`

	createObjectTypes = `CREATE TABLE object_types (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    meta_layout TEXT
);`

	createObjects = `CREATE TABLE objects (
    id INTEGER PRIMARY KEY,
    collection INTEGER NOT NULL,
    "index" INTEGER NOT NULL,
    type INTEGER NOT NULL,
    UNIQUE (collection, "index"),
    FOREIGN KEY (collection) REFERENCES collections(id),
    FOREIGN KEY (type) REFERENCES object_types(id)
);`

	createMetaFields = `CREATE TABLE meta_fields (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    type TEXT NOT NULL
);`

	createMetaValues = `CREATE TABLE meta_values (
    object_id INTEGER NOT NULL,
    field_id INTEGER NOT NULL,
    value TEXT,
    FOREIGN KEY (object_id) REFERENCES objects(id),
    FOREIGN KEY (field_id) REFERENCES meta_fields(id)
);`

	createMessages = `CREATE TABLE messages (
    id INTEGER PRIMARY KEY,
    title TEXT,
    date TEXT,
    author TEXT,
    content TEXT
);`
)

// Index DDL for the lookups the site performs.
const (
	idxObjectsType      = `CREATE INDEX idx_objects_type ON objects(type);`
	idxMetaValuesObject = `CREATE INDEX idx_meta_values_object ON meta_values(object_id);`
	idxMetaValuesField  = `CREATE INDEX idx_meta_values_field ON meta_values(field_id, object_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createCollections,
	createObjectTypes,
	createObjects,
	createMetaFields,
	createMetaValues,
	createMessages,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxObjectsType,
	idxMetaValuesObject,
	idxMetaValuesField,
}
