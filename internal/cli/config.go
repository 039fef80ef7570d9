package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/yaklabco/doclex/internal/configloader"
	"github.com/yaklabco/doclex/internal/ui/pretty"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Long: `Inspect how doclex resolves its configuration.

Settings are layered from built-in defaults, the system file, the user file,
the nearest project file (.doclex.yml, .doclex.yaml or .doclex.toml), the
file named by --config, DOCLEX_* environment variables and command flags.
Later layers win.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigPathsCommand())
	cmd.AddCommand(newConfigEnvCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "yaml" && format != "toml" {
				return fmt.Errorf("invalid format %q: must be yaml or toml", format)
			}

			result, err := loadForCommand(cmd)
			if err != nil {
				return err
			}

			content, err := result.Config.Encode("config."+format, "")
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(content)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml or toml")

	return cmd
}

func newConfigPathsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "List configuration file locations and which were loaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := loadForCommand(cmd)
			if err != nil {
				return err
			}

			styles := commandStyles(cmd)
			loaded := make(map[string]bool, len(result.LoadedFrom))
			for _, path := range result.LoadedFrom {
				loaded[path] = true
			}

			out := cmd.OutOrStdout()
			row := func(layer, path string) {
				switch {
				case path == "":
					fmt.Fprintf(out, "%-9s %s\n", layer, styles.Dim.Render("(none)"))
				case loaded[path]:
					fmt.Fprintf(out, "%-9s %s %s\n", layer, styles.FilePath.Render(path), styles.Success.Render("loaded"))
				default:
					fmt.Fprintf(out, "%-9s %s %s\n", layer, styles.FilePath.Render(path), styles.Dim.Render("skipped"))
				}
			}

			row("system", result.Paths.System)
			row("user", result.Paths.User)
			row("project", result.Paths.Project)
			row("explicit", result.Paths.Explicit)

			return nil
		},
	}
}

func newConfigEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables doclex reads",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			styles := commandStyles(cmd)
			for _, envVar := range configloader.ListEnvVars() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n",
					styles.TagName.Render(fmt.Sprintf("%-22s", envVar.Name)),
					envVar.Description,
				)
			}
		},
	}
}

// loadForCommand resolves the configuration for the working directory and
// the persistent --config flag.
func loadForCommand(cmd *cobra.Command) (*configloader.LoadResult, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		Fs:           afero.NewOsFs(),
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	return result, nil
}

// commandStyles returns output styles honoring the persistent --color flag.
func commandStyles(cmd *cobra.Command) *pretty.Styles {
	color, err := cmd.Flags().GetString("color")
	if err != nil {
		color = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(color, cmd.OutOrStdout()))
}
