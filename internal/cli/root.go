// Package cli provides the Cobra command structure for doclex.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/doclex/internal/logging"
	"github.com/yaklabco/doclex/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root doclex command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "doclex",
		Short: "Tokenize Markdown documentation comments in source code",
		Long: `doclex finds documentation comments in C-family sources (/// line runs and
/** */ blocks), strips their markers and incidental indentation, and splits
each body into text, code, inline tag and block tag tokens.

Every token carries an offset that maps back to the exact source position,
so the output can drive editors, linters and documentation generators.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", config.ColorAuto,
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newScanCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
