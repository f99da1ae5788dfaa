package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cdb/internal/paths"
)

// withTempHome points CDB_HOME at a temp directory for the test.
func withTempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	originalEnv := os.Getenv(paths.CdbHomeEnvVar)
	_ = os.Setenv(paths.CdbHomeEnvVar, home)
	t.Cleanup(func() { _ = os.Setenv(paths.CdbHomeEnvVar, originalEnv) })
	return home
}

func writeDatabaseFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "compile_commands.json")
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestLoadRegistryEmpty(t *testing.T) {
	withTempHome(t)

	reg, err := LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry failed: %v", err)
	}
	if len(reg.Associations) != 0 {
		t.Errorf("Expected empty registry, got %d associations", len(reg.Associations))
	}
	if reg.Version != currentRegistryVersion {
		t.Errorf("Expected version %d, got %d", currentRegistryVersion, reg.Version)
	}
}

func TestAddAndReload(t *testing.T) {
	withTempHome(t)
	project := t.TempDir()
	database := writeDatabaseFile(t, t.TempDir())

	reg, err := LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry failed: %v", err)
	}
	if err := reg.Add(project, database); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	reloaded, err := LoadRegistry()
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	entries := reloaded.List()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 association, got %d", len(entries))
	}
	if entries[0].Project != project || entries[0].Database != database {
		t.Errorf("Unexpected association: %+v", entries[0])
	}
}

func TestAddValidatesPaths(t *testing.T) {
	withTempHome(t)
	project := t.TempDir()
	database := writeDatabaseFile(t, t.TempDir())

	reg, _ := LoadRegistry()

	if err := reg.Add("/nonexistent/project", database); err == nil {
		t.Error("Expected error for missing project directory")
	}
	if err := reg.Add(project, "/nonexistent/compile_commands.json"); err == nil {
		t.Error("Expected error for missing database file")
	}
	if err := reg.Add(project, t.TempDir()); err == nil {
		t.Error("Expected error for database path that is a directory")
	}
}

func TestAddReplacesExisting(t *testing.T) {
	withTempHome(t)
	project := t.TempDir()
	first := writeDatabaseFile(t, t.TempDir())
	second := writeDatabaseFile(t, t.TempDir())

	reg, _ := LoadRegistry()
	if err := reg.Add(project, first); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := reg.Add(project, second); err != nil {
		t.Fatalf("Second Add failed: %v", err)
	}

	db, ok := reg.DatabaseFor(filepath.Join(project, "src", "a.c"))
	if !ok || db != second {
		t.Errorf("Expected replacement database %s, got %s (ok=%v)", second, db, ok)
	}
}

func TestRemove(t *testing.T) {
	withTempHome(t)
	project := t.TempDir()
	database := writeDatabaseFile(t, t.TempDir())

	reg, _ := LoadRegistry()
	if err := reg.Add(project, database); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := reg.Remove(project); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, ok := reg.DatabaseFor(filepath.Join(project, "a.c")); ok {
		t.Error("Expected association to be gone")
	}

	if err := reg.Remove(project); err == nil {
		t.Error("Expected error removing an unknown project")
	}
}

func TestDatabaseForLongestRootWins(t *testing.T) {
	withTempHome(t)
	outer := t.TempDir()
	inner := filepath.Join(outer, "vendor", "lib")
	if err := os.MkdirAll(inner, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	outerDB := writeDatabaseFile(t, t.TempDir())
	innerDB := writeDatabaseFile(t, inner)

	reg, _ := LoadRegistry()
	if err := reg.Add(outer, outerDB); err != nil {
		t.Fatalf("Add outer failed: %v", err)
	}
	if err := reg.Add(inner, innerDB); err != nil {
		t.Fatalf("Add inner failed: %v", err)
	}

	db, ok := reg.DatabaseFor(filepath.Join(inner, "x.c"))
	if !ok || db != innerDB {
		t.Errorf("Expected inner database for nested file, got %s (ok=%v)", db, ok)
	}

	db, ok = reg.DatabaseFor(filepath.Join(outer, "main.c"))
	if !ok || db != outerDB {
		t.Errorf("Expected outer database for top-level file, got %s (ok=%v)", db, ok)
	}

	if _, ok := reg.DatabaseFor("/unrelated/file.c"); ok {
		t.Error("Expected no database for unrelated file")
	}
}

func TestTouch(t *testing.T) {
	withTempHome(t)
	project := t.TempDir()
	database := writeDatabaseFile(t, t.TempDir())

	reg, _ := LoadRegistry()
	if err := reg.Add(project, database); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	before := reg.Associations[project].LastUsedAt
	time.Sleep(10 * time.Millisecond)
	if err := reg.Touch(project); err != nil {
		t.Fatalf("Touch failed: %v", err)
	}
	after := reg.Associations[project].LastUsedAt
	if !after.After(before) {
		t.Errorf("Expected LastUsedAt to advance: %v -> %v", before, after)
	}
}

func TestLoadRegistryCorrupt(t *testing.T) {
	home := withTempHome(t)
	if err := os.WriteFile(filepath.Join(home, "databases.json"), []byte("{broken"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := LoadRegistry(); err == nil {
		t.Fatal("Expected an error for a corrupt registry")
	}
}

func TestLockLifecycle(t *testing.T) {
	home := withTempHome(t)
	lockPath := filepath.Join(home, "databases.lock")

	lock, err := acquireLock(lockPath)
	if err != nil {
		t.Fatalf("acquireLock failed: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Errorf("Release failed: %v", err)
	}
	// Releasing twice is harmless.
	if err := lock.Release(); err != nil {
		t.Errorf("Second Release failed: %v", err)
	}
}
