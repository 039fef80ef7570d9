package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/yaklabco/doclex/internal/configloader"
	"github.com/yaklabco/doclex/internal/logging"
	"github.com/yaklabco/doclex/pkg/config"
	"github.com/yaklabco/doclex/pkg/fsutil"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force   bool
	minimal bool
	format  string
	output  string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new doclex configuration file",
		Long: `Create a new .doclex.yml configuration file in the current directory
holding the built-in defaults, ready to be customized.

Examples:
  doclex init                     Create .doclex.yml
  doclex init --format toml       Create .doclex.toml instead
  doclex init --minimal           Only write dialect and tab stop
  doclex init --output custom.yml Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, afero.NewOsFs(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.minimal, "minimal", false, "Only write the dialect and tab stop")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .doclex.yml or .doclex.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, fs afero.Fs, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	if flags.format != "yaml" && flags.format != "toml" {
		return fmt.Errorf("invalid format %q: must be yaml or toml", flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".doclex.yml"
		if flags.format == "toml" {
			outputPath = ".doclex.toml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	cfg := config.NewConfig()
	if flags.minimal {
		cfg = &config.Config{Dialect: cfg.Dialect, TabStop: cfg.TabStop}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := configloader.WriteConfig(ctx, fs, cfg, absPath, flags.force); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if exists, _ := afero.Exists(fs, fsutil.BackupPath(absPath)); exists && flags.force {
		logger.Info("previous file kept as backup", logging.FieldPath, fsutil.BackupPath(outputPath))
	}
	logger.Info("run 'doclex config env' to see the environment overrides")

	return nil
}
