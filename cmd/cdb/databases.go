package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cdb/internal/registry"
)

var databasesFormat string

// DatabasesResponseCLI is the output of the databases command.
type DatabasesResponseCLI struct {
	Databases []registry.Association `json:"databases" yaml:"databases"`
}

var databasesCmd = &cobra.Command{
	Use:   "databases",
	Short: "List registered project/database associations",
	Args:  cobra.NoArgs,
	RunE:  runDatabases,
}

func init() {
	databasesCmd.Flags().StringVar(&databasesFormat, "format", "human", "Output format: json, yaml, or human")
	rootCmd.AddCommand(databasesCmd)
}

func runDatabases(cmd *cobra.Command, args []string) error {
	reg, err := registry.LoadRegistry()
	if err != nil {
		return err
	}

	resp := &DatabasesResponseCLI{Databases: reg.List()}
	output, err := FormatResponse(resp, OutputFormat(databasesFormat))
	if err != nil {
		return err
	}
	fmt.Println(output)
	return nil
}
