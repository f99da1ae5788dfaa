// Package registry persists explicit project-to-database associations, for
// builds whose compile_commands.json lives outside the source tree.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"cdb/internal/cdberr"
	"cdb/internal/paths"
)

// Association links a project root to a compilation database file.
type Association struct {
	Project    string    `json:"project"`  // always absolute, cleaned
	Database   string    `json:"database"` // always absolute, cleaned
	AddedAt    time.Time `json:"added_at"`
	LastUsedAt time.Time `json:"last_used_at,omitempty"`
}

// Registry stores the global project-to-database associations.
type Registry struct {
	Associations map[string]Association `json:"associations"` // keyed by project path
	Version      int                    `json:"version"`
}

const currentRegistryVersion = 1

// GetRegistryPath returns the path to the global registry file.
func GetRegistryPath() (string, error) {
	home, err := paths.GetCdbHome()
	if err != nil {
		return "", fmt.Errorf("failed to get CDB home: %w", err)
	}
	return filepath.Join(home, "databases.json"), nil
}

// GetLockPath returns the path to the registry lock file.
func GetLockPath() (string, error) {
	home, err := paths.GetCdbHome()
	if err != nil {
		return "", fmt.Errorf("failed to get CDB home: %w", err)
	}
	return filepath.Join(home, "databases.lock"), nil
}

// LoadRegistry loads the registry from disk. A missing file yields an empty
// registry; an unreadable or unparsable one is an error.
func LoadRegistry() (*Registry, error) {
	path, err := GetRegistryPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Registry{
			Associations: make(map[string]Association),
			Version:      currentRegistryVersion,
		}, nil
	}
	if err != nil {
		return nil, cdberr.New(cdberr.RegistryCorrupt, "failed to read registry", err)
	}

	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, cdberr.New(cdberr.RegistryCorrupt, "failed to parse registry", err)
	}

	if reg.Version > currentRegistryVersion {
		return nil, cdberr.New(cdberr.RegistryCorrupt,
			fmt.Sprintf("registry version %d not supported (max: %d)", reg.Version, currentRegistryVersion), nil)
	}

	if reg.Associations == nil {
		reg.Associations = make(map[string]Association)
	}

	return &reg, nil
}

// Save persists the registry to disk with file locking.
func (r *Registry) Save() error {
	path, err := GetRegistryPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	if mkdirErr := os.MkdirAll(filepath.Dir(path), 0755); mkdirErr != nil {
		return fmt.Errorf("failed to create registry directory: %w", mkdirErr)
	}

	// Acquire lock
	lockPath, err := GetLockPath()
	if err != nil {
		return err
	}
	lock, err := acquireLock(lockPath)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer func() { _ = lock.Release() }()

	r.Version = currentRegistryVersion

	// Marshal with indentation for human readability
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	// Write atomically
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename registry: %w", err)
	}

	return nil
}

// Add registers a database for a project root, replacing any previous
// association for the same project.
func (r *Registry) Add(project, database string) error {
	absProject, err := filepath.Abs(project)
	if err != nil {
		return fmt.Errorf("failed to resolve project path: %w", err)
	}
	absProject = filepath.Clean(absProject)

	info, err := os.Stat(absProject)
	if err != nil {
		return fmt.Errorf("project directory does not exist: %s", absProject)
	}
	if !info.IsDir() {
		return fmt.Errorf("project path is not a directory: %s", absProject)
	}

	absDatabase, err := filepath.Abs(database)
	if err != nil {
		return fmt.Errorf("failed to resolve database path: %w", err)
	}
	absDatabase = filepath.Clean(absDatabase)

	info, err = os.Stat(absDatabase)
	if err != nil {
		return fmt.Errorf("database file does not exist: %s", absDatabase)
	}
	if info.IsDir() {
		return fmt.Errorf("database path is a directory: %s", absDatabase)
	}

	now := time.Now()
	r.Associations[absProject] = Association{
		Project:    absProject,
		Database:   absDatabase,
		AddedAt:    now,
		LastUsedAt: now,
	}

	return r.Save()
}

// Remove unregisters a project.
func (r *Registry) Remove(project string) error {
	absProject, err := filepath.Abs(project)
	if err != nil {
		return err
	}
	absProject = filepath.Clean(absProject)

	if _, exists := r.Associations[absProject]; !exists {
		return fmt.Errorf("no database registered for project: %s", absProject)
	}

	delete(r.Associations, absProject)
	return r.Save()
}

// List returns all associations sorted by project path.
func (r *Registry) List() []Association {
	entries := make([]Association, 0, len(r.Associations))
	for _, entry := range r.Associations {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Project < entries[j].Project
	})
	return entries
}

// Touch updates the last used timestamp for a project.
func (r *Registry) Touch(project string) error {
	entry, exists := r.Associations[project]
	if !exists {
		return fmt.Errorf("no database registered for project: %s", project)
	}
	entry.LastUsedAt = time.Now()
	r.Associations[project] = entry
	return r.Save()
}

// DatabaseFor returns the database of the longest registered project root
// that is an ancestor of file. Equal-length roots (only possible through
// path aliasing) resolve to the most recently used association. Implements
// the lookup consulted before the ancestor walk.
func (r *Registry) DatabaseFor(file string) (string, bool) {
	file = filepath.Clean(file)

	best := -1
	var bestEntry Association
	found := false
	for _, entry := range r.Associations {
		root := paths.EnsureTrailingSeparator(entry.Project)
		if !paths.HasPrefix(file, root) {
			continue
		}
		if len(root) > best || (len(root) == best && entry.LastUsedAt.After(bestEntry.LastUsedAt)) {
			best = len(root)
			bestEntry = entry
			found = true
		}
	}
	if !found {
		return "", false
	}
	return bestEntry.Database, true
}
