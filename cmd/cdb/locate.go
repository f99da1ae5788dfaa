package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cdb/internal/compdb"
)

var (
	locateSearchStart string
	locateFormat      string
)

// LocateResponseCLI is the output of the locate command.
type LocateResponseCLI struct {
	Database string `json:"database,omitempty" yaml:"database,omitempty"`
	Origin   string `json:"origin" yaml:"origin"`
}

var locateCmd = &cobra.Command{
	Use:   "locate <file>",
	Short: "Find the compilation database covering a source file",
	Long: `Find the compilation database that covers a source file without
querying it.

Registered associations are checked first, then ancestor directories of
the file are searched for compile_commands.json.`,
	Args: cobra.ExactArgs(1),
	RunE: runLocate,
}

func init() {
	locateCmd.Flags().StringVar(&locateSearchStart, "search-start", "", "Directory to start the database search from (default: the file's directory)")
	locateCmd.Flags().StringVar(&locateFormat, "format", "human", "Output format: json, yaml, or human")
	rootCmd.AddCommand(locateCmd)
}

func runLocate(cmd *cobra.Command, args []string) error {
	file, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve file path: %w", err)
	}

	cfg := loadConfig()
	logger := newLogger(cfg)
	resolver := buildResolver(cfg, logger)

	dbPath, origin := resolver.LocateFrom(file, locateSearchStart)
	resp := &LocateResponseCLI{Database: dbPath, Origin: string(origin)}

	output, err := FormatResponse(resp, OutputFormat(locateFormat))
	if err != nil {
		return err
	}
	fmt.Println(output)

	if origin == compdb.OriginNone {
		os.Exit(1)
	}
	return nil
}
