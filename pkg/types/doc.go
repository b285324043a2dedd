// Package types defines the catalogue entities, the read-only store
// interfaces, and the standard errors shared by the archief packages.
//
// Entities are plain records constructed at the data-access boundary; the
// rest of the module never inspects untyped rows.
package types
