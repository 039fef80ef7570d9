package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/doclex/internal/configloader"
	"github.com/yaklabco/doclex/internal/logging"
	"github.com/yaklabco/doclex/pkg/config"
	"github.com/yaklabco/doclex/pkg/reporter"
	"github.com/yaklabco/doclex/pkg/runner"
)

type scanFlags struct {
	format        string
	view          string
	dialect       string
	tagIntroducer string
	tabStop       int
	jobs          int
	ignore        []string
	extensions    []string
	strict        bool
	noContext     bool
	noSummary     bool
	compact       bool
}

func newScanCommand() *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Extract and tokenize documentation comments",
		Long:  scanLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, flags)
		},
	}

	addScanFlags(cmd, flags)

	return cmd
}

const scanLongDescription = `Extract documentation comments and print their token streams.

By default, scans every source file with a known extension in the current
directory and its subdirectories. Specify paths to scan specific files or
directories.

Examples:
  doclex scan                        # Scan current directory
  doclex scan src/                   # Scan src directory
  doclex scan Foo.java               # Scan a single file
  doclex scan --view tree            # Show the tag tree of each comment
  doclex scan --view outline         # Show Markdown block structure
  doclex scan --format json          # Output as JSON
  doclex scan --tab-stop 4           # Expand tabs to 4 columns
  doclex scan --strict               # Fail on unterminated comments`

// cliConfig builds the CLI configuration layer from flags that were set.
func cliConfig(cmd *cobra.Command, flags *scanFlags) (*config.Config, error) {
	cfg := &config.Config{}

	changed := cmd.Flags().Changed
	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("view") {
		cfg.View = config.View(flags.view)
	}
	if changed("dialect") {
		cfg.Dialect = flags.dialect
	}
	if changed("tag-introducer") {
		cfg.TagIntroducer = flags.tagIntroducer
	}
	if changed("tab-stop") {
		cfg.TabStop = flags.tabStop
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	cfg.Ignore = flags.ignore
	cfg.Extensions = flags.extensions
	cfg.Strict = flags.strict

	color, err := cmd.Flags().GetString("color")
	if err != nil {
		return nil, fmt.Errorf("get color flag: %w", err)
	}
	cfg.Color = color

	return cfg, nil
}

func runScan(cmd *cobra.Command, args []string, flags *scanFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	cliCfg, err := cliConfig(cmd, flags)
	if err != nil {
		return err
	}

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	logger.Debug("configuration loaded",
		logging.FieldPaths, loadResult.LoadedFrom,
		logging.FieldDialect, finalCfg.Dialect,
		logging.FieldTabStop, finalCfg.TabStop,
		logging.FieldFormat, finalCfg.Format,
		logging.FieldView, finalCfg.View,
		logging.FieldJobs, finalCfg.Jobs,
	)

	runOpts := runner.OptionsFromConfig(finalCfg, args)
	runOpts.WorkingDir = workDir

	result, err := runner.New().Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("scan failed"), err)
	}

	logger.Debug("scan finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldComments, result.Stats.Comments,
		logging.FieldTokens, result.Stats.Tokens,
		logging.FieldScanErrors, result.Stats.ScanErrors,
	)
	logScanErrors(logger, result)

	repOpts := reporter.OptionsFromConfig(finalCfg, cmd.OutOrStdout())
	repOpts.ShowContext = !flags.noContext
	repOpts.ShowSummary = !flags.noSummary
	repOpts.Compact = flags.compact
	repOpts.WorkingDir = workDir

	rep, err := reporter.New(repOpts)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	return resultError(ExitCodeFromResult(result, finalCfg.Strict))
}

// logScanErrors warns about unterminated comments and unreadable files.
func logScanErrors(logger *log.Logger, result *runner.Result) {
	for _, file := range result.Files {
		if file.Error != nil {
			logger.Warn("file could not be read", logging.FieldPath, file.Path, logging.FieldError, file.Error)
			continue
		}
		if file.Result == nil {
			continue
		}
		for _, diag := range file.Result.Diagnostics {
			if diag.Kind == runner.DiagnosticUnterminatedComment {
				logger.Warn(diag.Message, logging.FieldPath, file.Path, logging.FieldOffset, diag.Offset)
			}
		}
	}
}

func addScanFlags(cmd *cobra.Command, flags *scanFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, summary")
	cmd.Flags().StringVar(&flags.view, "view", "tokens", "text view per comment: tokens, tree, outline")
	cmd.Flags().StringVar(&flags.dialect, "dialect", "java", "literal syntax to skip while scanning: java, go")
	cmd.Flags().StringVar(&flags.tagIntroducer, "tag-introducer", "@", "character that starts a tag name")
	cmd.Flags().IntVar(&flags.tabStop, "tab-stop", config.DefaultTabStop, "tab stop used to measure indentation")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to scan (default: common C-family sources)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit non-zero when scan errors or unclosed tags are found")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in diagnostics")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the closing summary line")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minified JSON without token lists")
}
