// Package compdb locates and interprets JSON compilation databases
// (compile_commands.json) and answers the query "which compiler flags should
// be used to parse this source file?".
package compdb

import (
	"cdb/internal/logging"
)

// DefaultDatabaseFileName is the conventional database file name.
const DefaultDatabaseFileName = "compile_commands.json"

// DefaultSearchPathFlags are the include-search-path flags mined during
// fallback resolution. Both the separate-argument form ("-I inc") and the
// concatenated form ("-Iinc") are recognized.
var DefaultSearchPathFlags = []string{"-I", "-isystem", "-iquote", "-idirafter"}

// RawCompileCommand mirrors one element of the JSON compilation database
// array. Command is a single shell-escaped string in this variant.
type RawCompileCommand struct {
	Directory string `json:"directory"`
	File      string `json:"file"`
	Command   string `json:"command"`
}

// Entry is one normalized database record. File is always an absolute,
// cleaned path; Options never contains the compiler executable, -c, -o and
// its argument, the source file itself, or anything after a bare "--"; Dir
// is the base directory for resolving relative paths remaining in Options.
type Entry struct {
	File    string   `json:"file"`
	Options []string `json:"options"`
	Dir     string   `json:"directory"`
}

// FileDatabase holds normalized entries in original database order. It is
// rebuilt on every query and never persisted.
type FileDatabase []*Entry

// DirectoryOptions is the representative (options, base directory) pair kept
// for a directory key in the fallback database.
type DirectoryOptions struct {
	Options []string
	Dir     string
}

// DirectoryDatabase maps directory paths (with trailing separator) to one
// representative options pair each, preserving insertion order so that
// equal-length prefix ties resolve to the first directory seen.
type DirectoryDatabase struct {
	keys    []string
	entries map[string]DirectoryOptions
}

// NewDirectoryDatabase returns an empty directory database.
func NewDirectoryDatabase() *DirectoryDatabase {
	return &DirectoryDatabase{entries: make(map[string]DirectoryOptions)}
}

// Add records options for dir unless the directory is already known. The
// first-seen pair always wins; synthetic entries never overwrite real ones.
func (dd *DirectoryDatabase) Add(dir string, opts DirectoryOptions) bool {
	if _, seen := dd.entries[dir]; seen {
		return false
	}
	dd.keys = append(dd.keys, dir)
	dd.entries[dir] = opts
	return true
}

// Len returns the number of directory keys.
func (dd *DirectoryDatabase) Len() int {
	return len(dd.keys)
}

// Keys returns the directory keys in insertion order.
func (dd *DirectoryDatabase) Keys() []string {
	out := make([]string, len(dd.keys))
	copy(out, dd.keys)
	return out
}

// Get returns the options pair recorded for dir.
func (dd *DirectoryDatabase) Get(dir string) (DirectoryOptions, bool) {
	opts, ok := dd.entries[dir]
	return opts, ok
}

// DatabaseLookup supplies explicit project-to-database associations consulted
// before the ancestor walk. Implemented by the registry.
type DatabaseLookup interface {
	// DatabaseFor returns the registered database path for file, if any.
	DatabaseFor(file string) (string, bool)
}

// Resolver answers compile-option queries. Both database representations are
// rebuilt from the raw file on every query; the zero-value cache policy is
// deliberate (low-frequency, interactive-latency operation).
type Resolver struct {
	// DatabaseFileName is the file name searched for during the ancestor
	// walk. Defaults to compile_commands.json.
	DatabaseFileName string

	// FallbackEnabled controls the directory-proximity heuristic used when
	// no exact entry exists.
	FallbackEnabled bool

	// InferSearchPaths controls whether include-search-path flags contribute
	// synthetic directory entries during fallback.
	InferSearchPaths bool

	// SearchPathFlags lists the flags mined for search paths.
	SearchPathFlags []string

	// Lookup, when non-nil, is consulted before the ancestor walk.
	Lookup DatabaseLookup

	// Logger receives per-entry drop diagnostics. Optional.
	Logger *logging.Logger
}

// NewResolver returns a resolver with the conventional defaults: the
// standard database file name, fallback and inference enabled.
func NewResolver(logger *logging.Logger) *Resolver {
	return &Resolver{
		DatabaseFileName: DefaultDatabaseFileName,
		FallbackEnabled:  true,
		InferSearchPaths: true,
		SearchPathFlags:  DefaultSearchPathFlags,
		Logger:           logger,
	}
}

func (r *Resolver) databaseFileName() string {
	if r.DatabaseFileName == "" {
		return DefaultDatabaseFileName
	}
	return r.DatabaseFileName
}

func (r *Resolver) searchPathFlags() []string {
	if len(r.SearchPathFlags) == 0 {
		return DefaultSearchPathFlags
	}
	return r.SearchPathFlags
}

func (r *Resolver) debugf(message string, fields map[string]interface{}) {
	if r.Logger != nil {
		r.Logger.Debug(message, fields)
	}
}

func (r *Resolver) warnf(message string, fields map[string]interface{}) {
	if r.Logger != nil {
		r.Logger.Warn(message, fields)
	}
}
