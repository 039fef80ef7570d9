package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/doclex/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// View selects what the text format prints for each comment.
	View config.View

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext includes the source line under each diagnostic.
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Compact uses minified JSON and omits token lists from it.
	Compact bool

	// Width caps the length of quoted token text. Zero uses the terminal width.
	Width int

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		View:        config.ViewTokens,
		Color:       config.ColorAuto,
		ShowContext: true,
		ShowSummary: true,
	}
}

// OptionsFromConfig derives reporter options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, writer io.Writer) Options {
	opts := DefaultOptions()
	opts.Writer = writer
	if cfg == nil {
		return opts
	}
	if cfg.Format != "" {
		opts.Format = Format(cfg.Format)
	}
	if cfg.View != "" {
		opts.View = cfg.View
	}
	if cfg.Color != "" {
		opts.Color = cfg.Color
	}
	return opts
}
