package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io/fs"
)

// readJSONL reads a JSONL file from fsys and returns each non-empty,
// parseable line as a json.RawMessage. Malformed lines are skipped and
// counted.
func readJSONL(fsys fs.FS, path string) ([]json.RawMessage, int, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	var records []json.RawMessage
	skipped := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			skipped++
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, skipped, nil
}
