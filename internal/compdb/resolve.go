package compdb

import (
	"path/filepath"
	"strings"

	"cdb/internal/paths"
)

// Source describes which resolution stage produced a result.
type Source string

const (
	// SourceExact means the file has its own database entry.
	SourceExact Source = "exact"
	// SourceDirectory means the directory-proximity fallback matched.
	SourceDirectory Source = "directory"
	// SourceNone means no flags could be determined.
	SourceNone Source = "none"
)

// Result is the full answer to one compile-options query.
type Result struct {
	// Candidates holds one option list per matching database entry, in
	// database order. Callers conventionally take the first. Fallback
	// results always have exactly one candidate.
	Candidates [][]string `json:"candidates"`

	// Source is the resolution stage that produced the candidates.
	Source Source `json:"source"`

	// Database is the path of the database consulted, if any.
	Database string `json:"database,omitempty"`
}

// Query resolves compile options for the given source file. searchStart, when
// non-empty, overrides where the database ancestor walk begins. A missing
// database, or a database with neither an exact nor a fallback match,
// returns a Result with SourceNone and no error; only a structurally
// malformed database or an IO failure is a hard error.
func (r *Resolver) Query(file, searchStart string) (*Result, error) {
	if file == "" {
		// No file context: nothing to resolve, database not even loaded.
		return &Result{Source: SourceNone}, nil
	}
	file = filepath.Clean(file)

	dbPath, origin := r.LocateFrom(file, searchStart)
	if origin == OriginNone {
		return &Result{Source: SourceNone}, nil
	}

	db, err := r.Load(dbPath)
	if err != nil {
		return nil, err
	}

	if exact := ExactMatches(db, file); len(exact) > 0 {
		r.debugf("Exact match", map[string]interface{}{
			"file":       file,
			"candidates": len(exact),
		})
		return &Result{Candidates: exact, Source: SourceExact, Database: dbPath}, nil
	}

	if !r.FallbackEnabled {
		return &Result{Source: SourceNone, Database: dbPath}, nil
	}

	dd := r.BuildDirectoryDatabase(db)
	if options, ok := longestPrefixOptions(dd, file); ok {
		r.debugf("Directory fallback match", map[string]interface{}{
			"file":        file,
			"directories": dd.Len(),
		})
		return &Result{Candidates: [][]string{options}, Source: SourceDirectory, Database: dbPath}, nil
	}

	return &Result{Source: SourceNone, Database: dbPath}, nil
}

// Options returns the conventional single answer: the first candidate of
// Query, or nil when no flags can be determined.
func (r *Resolver) Options(file, searchStart string) ([]string, error) {
	result, err := r.Query(file, searchStart)
	if err != nil {
		return nil, err
	}
	if len(result.Candidates) == 0 {
		return nil, nil
	}
	return result.Candidates[0], nil
}

// ExactMatches returns the option lists of every entry whose file equals the
// queried path exactly, in database order. Duplicate build targets yield
// multiple candidates. An empty result is not an error; it triggers the
// fallback path.
func ExactMatches(db FileDatabase, file string) [][]string {
	var matches [][]string
	for _, entry := range db {
		if entry.File == file {
			matches = append(matches, entry.Options)
		}
	}
	return matches
}

// BuildDirectoryDatabase aggregates entries by containing directory and,
// when enabled, extends the aggregate with synthetic entries for every
// include-search-path directory mentioned in any command. Synthetic entries
// never overwrite directories already present.
func (r *Resolver) BuildDirectoryDatabase(db FileDatabase) *DirectoryDatabase {
	dd := NewDirectoryDatabase()
	for _, entry := range db {
		dd.Add(paths.ContainingDir(entry.File), DirectoryOptions{
			Options: entry.Options,
			Dir:     entry.Dir,
		})
	}

	if r.InferSearchPaths {
		inferSearchPathDirs(dd, r.searchPathFlags())
	}

	return dd
}

// inferSearchPathDirs walks the existing directory entries in insertion
// order and, for each search path discovered in an entry's options, adds a
// synthetic directory entry carrying that entry's (options, dir) pair.
func inferSearchPathDirs(dd *DirectoryDatabase, flags []string) {
	for _, key := range dd.Keys() {
		val, ok := dd.Get(key)
		if !ok {
			continue
		}
		for _, p := range searchPathsIn(val.Options, flags) {
			dir := paths.EnsureTrailingSeparator(paths.ExpandAgainst(val.Dir, p))
			dd.Add(dir, val)
		}
	}
}

// searchPathsIn extracts search-path arguments from an option list, in
// option order. Each flag matches either as a separate token followed by the
// path, or concatenated with the path in one token.
func searchPathsIn(options []string, flags []string) []string {
	var found []string
	for i := 0; i < len(options); i++ {
		tok := options[i]
		for _, flag := range flags {
			if tok == flag {
				if i+1 < len(options) {
					found = append(found, options[i+1])
					i++
				}
				break
			}
			if strings.HasPrefix(tok, flag) && len(tok) > len(flag) {
				found = append(found, tok[len(flag):])
				break
			}
		}
	}
	return found
}

// longestPrefixOptions picks the directory key that is the longest
// string-prefix of the queried path. Only a strictly longer prefix replaces
// the current best, so equal-length ties keep the first-seen directory. The
// prefix test is deliberately not segment-aware.
func longestPrefixOptions(dd *DirectoryDatabase, file string) ([]string, bool) {
	best := -1
	var bestOptions []string
	for _, key := range dd.keys {
		if paths.HasPrefix(file, key) && len(key) > best {
			best = len(key)
			bestOptions = dd.entries[key].Options
		}
	}
	if best < 0 {
		return nil, false
	}
	return bestOptions, true
}
