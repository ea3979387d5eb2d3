// Package cli defines the cobra command tree for the travel planner backend.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command with its subcommands.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "travel",
		Short:         "Travel planner API server",
		Long:          "Serve the travel planner HTTP API and manage its Postgres schema. Configuration is read from the environment and an optional .env file.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newVersionCmd(),
	)

	return root
}

// newLogger builds the JSON slog logger used by every command.
// Unknown levels fall back to info.
func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}
