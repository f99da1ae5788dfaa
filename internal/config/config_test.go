package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("Expected version 1, got %d", cfg.Version)
	}
	if cfg.DatabaseFileName != "compile_commands.json" {
		t.Errorf("Expected default database file name, got %s", cfg.DatabaseFileName)
	}
	if !cfg.Query.FallbackEnabled || !cfg.Query.InferSearchPaths {
		t.Error("Expected fallback and inference enabled by default")
	}
	want := []string{"-I", "-isystem", "-iquote", "-idirafter"}
	if !reflect.DeepEqual(cfg.Query.SearchPathFlags, want) {
		t.Errorf("SearchPathFlags = %v, want %v", cfg.Query.SearchPathFlags, want)
	}
	if cfg.Logging.Format != "human" || cfg.Logging.Level != "info" {
		t.Errorf("Unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	root := t.TempDir()
	configDir := filepath.Join(root, ".cdb")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	content := `{
		"version": 1,
		"databaseFileName": "cc.json",
		"query": {"fallbackEnabled": false},
		"logging": {"format": "json", "level": "debug"}
	}`
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.DatabaseFileName != "cc.json" {
		t.Errorf("Expected cc.json, got %s", cfg.DatabaseFileName)
	}
	if cfg.Query.FallbackEnabled {
		t.Error("Expected fallback disabled")
	}
	// Unspecified fields keep their defaults.
	if !cfg.Query.InferSearchPaths {
		t.Error("Expected inference to keep its default")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("Unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	root := t.TempDir()
	configDir := filepath.Join(root, ".cdb")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := LoadConfig(root); err == nil {
		t.Fatal("Expected an error for invalid JSON")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	root := t.TempDir()

	cfg := DefaultConfig()
	cfg.DatabaseFileName = "custom.json"
	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.DatabaseFileName != "custom.json" {
		t.Errorf("Expected custom.json after round trip, got %s", loaded.DatabaseFileName)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"bad version", func(c *Config) { c.Version = 99 }, true},
		{"empty database name", func(c *Config) { c.DatabaseFileName = "" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
