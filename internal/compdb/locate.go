package compdb

import (
	"os"
	"path/filepath"

	"cdb/internal/paths"
)

// Origin describes how a database path was found.
type Origin string

const (
	// OriginRegistry means an explicit project association supplied the path.
	OriginRegistry Origin = "registry"
	// OriginAncestor means the ancestor-directory walk found the file.
	OriginAncestor Origin = "ancestor"
	// OriginNone means no database was found.
	OriginNone Origin = "none"
)

// Locate finds the compilation database governing file. Explicit registry
// associations win over the ancestor walk, which starts at the file's
// containing directory (or the current working directory when file is empty)
// and stops at the filesystem root. Returns "" and OriginNone when nothing
// is found; that is not an error.
func (r *Resolver) Locate(file string) (string, Origin) {
	return r.LocateFrom(file, "")
}

// LocateFrom is Locate with an explicit walk origin. When searchStart is
// non-empty the ancestor walk begins there instead of at the file's
// containing directory; registry associations still apply to file.
func (r *Resolver) LocateFrom(file, searchStart string) (string, Origin) {
	if r.Lookup != nil && file != "" {
		if db, ok := r.Lookup.DatabaseFor(file); ok {
			if _, err := os.Stat(db); err == nil {
				r.debugf("Database found via registry", map[string]interface{}{
					"file":     file,
					"database": db,
				})
				return db, OriginRegistry
			}
			r.warnf("Registered database missing on disk", map[string]interface{}{
				"file":     file,
				"database": db,
			})
		}
	}

	start := searchStart
	if start == "" && file != "" {
		start = filepath.Dir(file)
	}
	if start == "" {
		if wd, err := os.Getwd(); err == nil {
			start = wd
		}
	}
	if start == "" {
		return "", OriginNone
	}

	if db := paths.LocateDominatingFile(start, r.databaseFileName()); db != "" {
		r.debugf("Database found via ancestor walk", map[string]interface{}{
			"start":    start,
			"database": db,
		})
		return db, OriginAncestor
	}

	return "", OriginNone
}
