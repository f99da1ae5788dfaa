// Package config loads CDB configuration from .cdb/config.json.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete CDB configuration (v1 schema)
type Config struct {
	Version          int    `json:"version" mapstructure:"version"`
	DatabaseFileName string `json:"databaseFileName" mapstructure:"databaseFileName"`

	Query   QueryConfig   `json:"query" mapstructure:"query"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// QueryConfig controls the resolution pipeline
type QueryConfig struct {
	// FallbackEnabled turns the directory-proximity heuristic on or off
	FallbackEnabled bool `json:"fallbackEnabled" mapstructure:"fallbackEnabled"`

	// InferSearchPaths turns include-search-path inference on or off
	InferSearchPaths bool `json:"inferSearchPaths" mapstructure:"inferSearchPaths"`

	// SearchPathFlags lists the flags mined for header search directories
	SearchPathFlags []string `json:"searchPathFlags" mapstructure:"searchPathFlags"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

const currentVersion = 1

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:          currentVersion,
		DatabaseFileName: "compile_commands.json",
		Query: QueryConfig{
			FallbackEnabled:  true,
			InferSearchPaths: true,
			SearchPathFlags:  []string{"-I", "-isystem", "-iquote", "-idirafter"},
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <projectRoot>/.cdb/config.json,
// returning defaults when no config file exists.
func LoadConfig(projectRoot string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("version", currentVersion)
	v.SetDefault("databaseFileName", "compile_commands.json")
	v.SetDefault("query.fallbackEnabled", true)
	v.SetDefault("query.inferSearchPaths", true)
	v.SetDefault("query.searchPathFlags", []string{"-I", "-isystem", "-iquote", "-idirafter"})
	v.SetDefault("logging.format", "human")
	v.SetDefault("logging.level", "info")

	// Configure viper
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".cdb"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to <projectRoot>/.cdb/config.json
func (c *Config) Save(projectRoot string) error {
	configDir := filepath.Join(projectRoot, ".cdb")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	// Marshal to JSON with indentation
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	// Write to file
	return os.WriteFile(filepath.Join(configDir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != currentVersion {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.DatabaseFileName == "" {
		return &ConfigError{Field: "databaseFileName", Message: "must not be empty"}
	}
	switch c.Logging.Format {
	case "", "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be human or json"}
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "must be debug, info, warn, or error"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
