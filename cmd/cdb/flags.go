package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cdb/internal/compdb"
)

var (
	flagsSearchStart string
	flagsAll         bool
	flagsFormat      string
)

// FlagsResponseCLI is the output of the flags command.
type FlagsResponseCLI struct {
	File       string     `json:"file" yaml:"file"`
	Database   string     `json:"database,omitempty" yaml:"database,omitempty"`
	Source     string     `json:"source" yaml:"source"`
	Candidates [][]string `json:"candidates" yaml:"candidates"`
}

var flagsCmd = &cobra.Command{
	Use:   "flags <file>",
	Short: "Resolve compile options for a source file",
	Long: `Resolve the compile options for a source file from the nearest
compilation database.

The database is found by checking registered associations first, then
walking up from the file's directory looking for compile_commands.json.
Exact entries for the file win; otherwise the options recorded for the
closest directory are used.`,
	Args: cobra.ExactArgs(1),
	RunE: runFlags,
}

func init() {
	flagsCmd.Flags().StringVar(&flagsSearchStart, "search-start", "", "Directory to start the database search from (default: the file's directory)")
	flagsCmd.Flags().BoolVar(&flagsAll, "all", false, "Print every candidate option set instead of just the first")
	flagsCmd.Flags().StringVar(&flagsFormat, "format", "human", "Output format: json, yaml, or human")
	rootCmd.AddCommand(flagsCmd)
}

func runFlags(cmd *cobra.Command, args []string) error {
	file, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve file path: %w", err)
	}

	cfg := loadConfig()
	logger := newLogger(cfg)
	resolver := buildResolver(cfg, logger)

	result, err := resolver.Query(file, flagsSearchStart)
	if err != nil {
		return err
	}

	resp := &FlagsResponseCLI{
		File:       file,
		Database:   result.Database,
		Source:     string(result.Source),
		Candidates: result.Candidates,
	}
	if !flagsAll && len(resp.Candidates) > 1 {
		resp.Candidates = resp.Candidates[:1]
	}

	output, err := FormatResponse(resp, OutputFormat(flagsFormat))
	if err != nil {
		return err
	}
	fmt.Println(output)

	if result.Source == compdb.SourceNone {
		os.Exit(1)
	}
	return nil
}
