// Command ghostline inspects and migrates comparison files, replays recorded
// movement traces through the recorder and lists stored runs.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Name prefixes log files and the otel service.
const Name = "ghostline"

var (
	configDir string
	logLevel  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           Name,
		Short:         "Ghost run recorder tools",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "directory holding "+configFileName())
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(replayCmd())
	rootCmd.AddCommand(runsCmd())
	return rootCmd
}
