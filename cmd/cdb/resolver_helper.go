package main

import (
	"fmt"
	"os"

	"cdb/internal/compdb"
	"cdb/internal/config"
	"cdb/internal/logging"
	"cdb/internal/registry"
)

// loggerSettings resolves the effective log level and format. Precedence:
// CLI flag > CDB_LOG_LEVEL / CDB_LOG_FORMAT env vars > config > defaults.
func loggerSettings(cfg *config.Config) (level, format string) {
	level = logLevelFlag
	if level == "" {
		level = os.Getenv("CDB_LOG_LEVEL")
	}
	if level == "" && cfg != nil {
		level = cfg.Logging.Level
	}
	if level == "" {
		level = "info"
	}

	format = logFormatFlag
	if format == "" {
		format = os.Getenv("CDB_LOG_FORMAT")
	}
	if format == "" && cfg != nil {
		format = cfg.Logging.Format
	}
	if format == "" {
		format = "human"
	}
	return level, format
}

// newLogger builds the command logger from the resolved settings.
func newLogger(cfg *config.Config) *logging.Logger {
	level, format := loggerSettings(cfg)
	return logging.NewLogger(logging.Config{
		Format: logging.Format(format),
		Level:  logging.LogLevel(level),
	})
}

// loadConfig loads .cdb/config.json from the current working directory,
// falling back to defaults when missing or unreadable.
func loadConfig() *config.Config {
	wd, err := os.Getwd()
	if err != nil {
		return config.DefaultConfig()
	}
	cfg, err := config.LoadConfig(wd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config, using defaults: %v\n", err)
		return config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid config, using defaults: %v\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

// buildResolver assembles a resolver from config and the global registry.
// A broken registry degrades to the plain ancestor walk.
func buildResolver(cfg *config.Config, logger *logging.Logger) *compdb.Resolver {
	r := compdb.NewResolver(logger)
	r.DatabaseFileName = cfg.DatabaseFileName
	r.FallbackEnabled = cfg.Query.FallbackEnabled
	r.InferSearchPaths = cfg.Query.InferSearchPaths
	r.SearchPathFlags = cfg.Query.SearchPathFlags

	reg, err := registry.LoadRegistry()
	if err != nil {
		logger.Warn("Registry unavailable, using ancestor walk only", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		r.Lookup = reg
	}

	return r
}
