package main

import (
	"github.com/spf13/cobra"

	"cdb/internal/compdb"
	"cdb/internal/logging"
	"cdb/internal/rpc"
	"cdb/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve compile-option queries over stdio",
	Long: `Serve compile-option queries as line-delimited JSON-RPC over
stdin/stdout, for editors and tools that keep a long-lived session
instead of shelling out per query.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	// Stdout carries the protocol. Force logs to JSON on stderr so a
	// stray log line can never corrupt a response.
	level, _ := loggerSettings(cfg)
	logger := logging.NewLogger(logging.Config{
		Format: logging.JSONFormat,
		Level:  logging.LogLevel(level),
	})

	factory := func() (*compdb.Resolver, error) {
		return buildResolver(cfg, logger), nil
	}

	server := rpc.NewServer(version.Version, factory, logger)
	return server.Run()
}
