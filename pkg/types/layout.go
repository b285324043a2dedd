package types

import (
	"strconv"
	"strings"
)

// ParseLayout parses a comma-separated list of field ids as stored in
// object_types.meta_layout. Surrounding whitespace around ids is allowed.
// Any malformed input, including the empty string and empty tokens such as
// "3,,2", yields an empty layout. ParseLayout never fails.
func ParseLayout(raw string) []int64 {
	if raw == "" {
		return []int64{}
	}
	tokens := strings.Split(raw, ",")
	layout := make([]int64, 0, len(tokens))
	for _, tok := range tokens {
		id, err := strconv.ParseInt(strings.TrimSpace(tok), 10, 64)
		if err != nil {
			return []int64{}
		}
		layout = append(layout, id)
	}
	return layout
}
