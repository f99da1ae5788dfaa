// Package testutil provides fixture helpers for compilation-database tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Project is a throwaway source tree with a compilation database, rooted in
// a per-test temp directory.
type Project struct {
	// Root is the absolute path of the project tree.
	Root string

	// Database is the path of the last database written, if any.
	Database string
}

// NewProject creates an empty project tree.
func NewProject(t *testing.T) *Project {
	t.Helper()
	return &Project{Root: t.TempDir()}
}

// Dir creates (if needed) and returns an absolute directory path inside the
// project.
func (p *Project) Dir(t *testing.T, rel string) string {
	t.Helper()
	dir := filepath.Join(p.Root, rel)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create dir %s: %v", dir, err)
	}
	return dir
}

// WriteFile writes a file inside the project, creating parent directories,
// and returns its absolute path.
func (p *Project) WriteFile(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(p.Root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// Command is one raw database entry for WriteDatabase.
type Command struct {
	Directory string `json:"directory"`
	File      string `json:"file"`
	Command   string `json:"command"`
}

// WriteDatabase writes a compile_commands.json at rel (a directory relative
// to the project root) and returns its absolute path.
func (p *Project) WriteDatabase(t *testing.T, rel string, commands []Command) string {
	t.Helper()
	data, err := json.MarshalIndent(commands, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal database: %v", err)
	}
	dir := p.Dir(t, rel)
	path := filepath.Join(dir, "compile_commands.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write database %s: %v", path, err)
	}
	p.Database = path
	return path
}

// WriteRawDatabase writes arbitrary database content, for malformed-input
// tests.
func (p *Project) WriteRawDatabase(t *testing.T, rel, content string) string {
	t.Helper()
	dir := p.Dir(t, rel)
	path := filepath.Join(dir, "compile_commands.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write database %s: %v", path, err)
	}
	p.Database = path
	return path
}
