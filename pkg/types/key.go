package types

import (
	"fmt"
	"strconv"
	"strings"
)

// KeySeparator separates the collection name from the index in a catalogue
// key.
const KeySeparator = "_"

// CatalogKey is the decomposed form of an external catalogue key
// "<collection-name>_<index>".
type CatalogKey struct {
	Collection string
	Index      int64
}

// ParseCatalogKey splits key into collection name and index. The key must
// contain exactly one separator and the index segment must consist of
// decimal digits only. Returns an error wrapping ErrMalformedKey otherwise.
func ParseCatalogKey(key string) (CatalogKey, error) {
	parts := strings.Split(key, KeySeparator)
	if len(parts) != 2 {
		return CatalogKey{}, fmt.Errorf("%w: %q", ErrMalformedKey, key)
	}
	if !isDigits(parts[1]) {
		return CatalogKey{}, fmt.Errorf("%w: index %q is not a non-negative integer", ErrMalformedKey, parts[1])
	}
	index, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return CatalogKey{}, fmt.Errorf("%w: index %q: %v", ErrMalformedKey, parts[1], err)
	}
	return CatalogKey{Collection: parts[0], Index: index}, nil
}

// String formats the key in its external form.
func (k CatalogKey) String() string {
	return k.Collection + KeySeparator + strconv.FormatInt(k.Index, 10)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
