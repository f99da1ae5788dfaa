package compdb

import (
	"encoding/json"
	"fmt"
	"os"
)

// MalformedDatabaseError indicates the database file is not a valid JSON
// array. This is fatal to the whole query, unlike per-entry failures.
type MalformedDatabaseError struct {
	Path string
	Err  error
}

func (e *MalformedDatabaseError) Error() string {
	return fmt.Sprintf("malformed compilation database %s: %v", e.Path, e.Err)
}

func (e *MalformedDatabaseError) Unwrap() error {
	return e.Err
}

// Load reads and normalizes the database at path. Structural failure of the
// file (unreadable, invalid JSON, not an array) returns an error; entries
// that fail normalization are dropped individually, preserving the original
// order of the survivors.
func (r *Resolver) Load(path string) (FileDatabase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read compilation database: %w", err)
	}

	// Decode to raw elements first so a malformed element drops that entry
	// alone, while a non-array file aborts the query.
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, &MalformedDatabaseError{Path: path, Err: err}
	}

	db := make(FileDatabase, 0, len(elements))
	for i, elem := range elements {
		var raw RawCompileCommand
		if err := json.Unmarshal(elem, &raw); err != nil {
			r.warnf("Entry dropped: not an object", map[string]interface{}{
				"database": path,
				"index":    i,
			})
			continue
		}
		entry, err := Normalize(raw)
		if err != nil {
			r.warnf("Entry dropped during normalization", map[string]interface{}{
				"database": path,
				"index":    i,
				"file":     raw.File,
				"error":    err.Error(),
			})
			continue
		}
		db = append(db, entry)
	}

	r.debugf("Compilation database loaded", map[string]interface{}{
		"database": path,
		"raw":      len(elements),
		"kept":     len(db),
	})

	return db, nil
}
