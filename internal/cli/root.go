// Package cli provides the command-line interface for tabwatch.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/synthgrid/tabwatch/internal/config"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config, loaded before every command.
	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tabwatch",
	Short: "Live monitor for synthetic tabular data generation",
	Long: `Tabwatch watches a synthetic data generation pipeline in near real time.

It consumes the pipeline's event stream, classifies every frame into a
typed activity record, and shows a live view with overall progress,
the rolling activity feed, and per-agent performance.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}
	},
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tabwatch version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tabwatch %s\n", Version)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(versionCmd)
}
