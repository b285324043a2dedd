package types

import (
	"errors"
	"fmt"
)

// Lookup errors returned by the stores.
var (
	ErrNotFound     = errors.New("entity not found")
	ErrInvalidID    = errors.New("invalid entity ID")
	ErrInvalidLimit = errors.New("limit and offset must not be negative")
)

// Resolution errors. ErrMalformedKey and ErrObjectNotFound are caused by user
// input and are reported identically at the site boundary.
var (
	ErrMalformedKey   = errors.New("malformed catalogue key")
	ErrObjectNotFound = errors.New("object not found")
)

// ErrIntegrity marks referential corruption in the catalogue store. Every
// integrity error wraps it.
var ErrIntegrity = errors.New("catalogue integrity violation")

// Integrity errors.
var (
	ErrTypeNotFound  = fmt.Errorf("%w: object type not found", ErrIntegrity)
	ErrFieldNotFound = fmt.Errorf("%w: meta field not found", ErrIntegrity)
)

// Catalogue lifecycle errors.
var (
	ErrCatalogueDetached = errors.New("catalogue is detached")
	ErrAlreadyAttached   = errors.New("catalogue is already attached")
	ErrCatalogueMissing  = errors.New("catalogue database does not exist")
)

// IsIntegrity reports whether err indicates store corruption rather than a
// bad or unknown catalogue key.
func IsIntegrity(err error) bool {
	return errors.Is(err, ErrIntegrity)
}
