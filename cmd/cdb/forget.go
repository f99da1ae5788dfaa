package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cdb/internal/registry"
)

var forgetCmd = &cobra.Command{
	Use:   "forget [project]",
	Short: "Remove a project's database association",
	Long: `Remove the database association for a project root. The project
defaults to the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runForget,
}

func init() {
	rootCmd.AddCommand(forgetCmd)
}

func runForget(cmd *cobra.Command, args []string) error {
	var project string
	var err error
	if len(args) == 1 {
		project, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve project path: %w", err)
		}
	} else {
		project, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine current directory: %w", err)
		}
	}

	reg, err := registry.LoadRegistry()
	if err != nil {
		return err
	}
	if err := reg.Remove(project); err != nil {
		return err
	}

	fmt.Printf("Forgot association for %s\n", project)
	return nil
}
