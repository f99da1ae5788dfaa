// Package paths provides the path utilities used by database location and
// option resolution: expanding relative paths against a base directory,
// ancestor walks, and prefix tests.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// CdbHomeEnvVar overrides the default CDB home directory.
const CdbHomeEnvVar = "CDB_HOME"

// DefaultCdbHome is the directory name under $HOME used when CDB_HOME is unset.
const DefaultCdbHome = ".cdb"

// GetCdbHome returns the directory holding CDB's global state (the database
// registry). CDB_HOME takes precedence over ~/.cdb.
func GetCdbHome() (string, error) {
	if home := os.Getenv(CdbHomeEnvVar); home != "" {
		return home, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userHome, DefaultCdbHome), nil
}

// ExpandAgainst resolves path against base when it is relative, and cleans
// the result. Absolute paths are returned cleaned, unchanged otherwise.
func ExpandAgainst(base, path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(base, path))
}

// ContainingDir returns the directory containing file, with a trailing
// separator. Directory keys in the fallback database carry the trailing
// separator so that prefix tests cannot match partial path segments of the
// final component.
func ContainingDir(file string) string {
	dir := filepath.Dir(file)
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return dir
}

// EnsureTrailingSeparator appends the OS separator to dir if absent.
func EnsureTrailingSeparator(dir string) string {
	if dir == "" {
		return dir
	}
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return dir
}

// HasPrefix reports whether path starts with prefix. This is a plain string
// test, not a segment-aware one: the fallback heuristic relies on directory
// keys carrying their trailing separator.
func HasPrefix(path, prefix string) bool {
	return strings.HasPrefix(path, prefix)
}

// LocateDominatingFile walks ancestor directories starting at start (a
// directory) looking for a file literally named name. It returns the full
// path of the first match, or "" when the walk reaches the filesystem root
// without finding one.
func LocateDominatingFile(start, name string) string {
	dir := filepath.Clean(start)
	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
