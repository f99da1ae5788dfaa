package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cdb/internal/registry"
)

var selectProject string

var selectCmd = &cobra.Command{
	Use:   "select <database>",
	Short: "Associate a compilation database with a project",
	Long: `Associate a compilation database with a project root so queries for
files under that root use it directly, skipping the ancestor search.

The project defaults to the current directory. Associations are stored
in ~/.cdb/databases.json and survive across sessions.`,
	Args: cobra.ExactArgs(1),
	RunE: runSelect,
}

func init() {
	selectCmd.Flags().StringVar(&selectProject, "project", "", "Project root to associate (default: current directory)")
	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, args []string) error {
	database, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve database path: %w", err)
	}

	project := selectProject
	if project == "" {
		project, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine current directory: %w", err)
		}
	}
	project, err = filepath.Abs(project)
	if err != nil {
		return fmt.Errorf("failed to resolve project path: %w", err)
	}

	reg, err := registry.LoadRegistry()
	if err != nil {
		return err
	}
	if err := reg.Add(project, database); err != nil {
		return err
	}

	fmt.Printf("Registered %s\n", database)
	fmt.Printf("  for project %s\n", project)
	return nil
}
