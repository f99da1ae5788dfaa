package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"cdb/internal/cdberr"
	"cdb/internal/compdb"
)

var (
	entriesFile   string
	entriesFormat string
)

// EntriesResponseCLI is the output of the entries command.
type EntriesResponseCLI struct {
	Database string          `json:"database" yaml:"database"`
	Entries  []*compdb.Entry `json:"entries" yaml:"entries"`
}

var entriesCmd = &cobra.Command{
	Use:   "entries [database]",
	Short: "List the normalized entries of a compilation database",
	Long: `List every entry of a compilation database after normalization:
compiler name, -c, -o and the source file stripped from each command.

Pass the database path directly, or use --file to locate the database
that covers a source file first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEntries,
}

func init() {
	entriesCmd.Flags().StringVar(&entriesFile, "file", "", "Locate the database covering this source file instead of naming one")
	entriesCmd.Flags().StringVar(&entriesFormat, "format", "human", "Output format: json, yaml, or human")
	rootCmd.AddCommand(entriesCmd)
}

func runEntries(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := newLogger(cfg)
	resolver := buildResolver(cfg, logger)

	var dbPath string
	var err error
	switch {
	case len(args) == 1:
		dbPath, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve database path: %w", err)
		}
	case entriesFile != "":
		file, err := filepath.Abs(entriesFile)
		if err != nil {
			return fmt.Errorf("failed to resolve file path: %w", err)
		}
		var origin compdb.Origin
		dbPath, origin = resolver.Locate(file)
		if origin == compdb.OriginNone {
			return cdberr.New(cdberr.DatabaseNotFound,
				fmt.Sprintf("no compilation database found for %s", file), nil)
		}
	default:
		return fmt.Errorf("either a database path or --file is required")
	}

	entries, err := resolver.Load(dbPath)
	if err != nil {
		return err
	}

	resp := &EntriesResponseCLI{Database: dbPath, Entries: entries}
	output, err := FormatResponse(resp, OutputFormat(entriesFormat))
	if err != nil {
		return err
	}
	fmt.Println(output)
	return nil
}
