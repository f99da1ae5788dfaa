package main

import (
	"github.com/spf13/cobra"

	"cdb/internal/version"
)

var (
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "cdb",
	Short: "CDB - Compilation Database Query Tool",
	Long: `CDB answers the question "which compiler flags should be used to parse
this source file?" by locating and interpreting the project's JSON
compilation database (compile_commands.json), with a directory-proximity
fallback for headers and files not directly compiled.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("CDB version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "",
		"Log format: human or json")
}
