// Package config defines the configuration types for doclex.
// These are pure data structures; resolution and validation live in
// internal/configloader.
package config

import "slices"

// OutputFormat represents the scan output format.
type OutputFormat string

const (
	// FormatText prints styled, human-readable token and tree dumps.
	FormatText OutputFormat = "text"

	// FormatJSON prints a machine-readable document.
	FormatJSON OutputFormat = "json"

	// FormatSummary prints a single line of totals.
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the output format is recognized.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSummary:
		return true
	default:
		return false
	}
}

// View selects what is printed for each comment.
type View string

const (
	// ViewTokens prints the token stream.
	ViewTokens View = "tokens"

	// ViewTree prints the doc tree.
	ViewTree View = "tree"

	// ViewOutline prints the Markdown block outline of the description.
	ViewOutline View = "outline"
)

// IsValid returns true if the view is recognized.
func (v View) IsValid() bool {
	switch v {
	case ViewTokens, ViewTree, ViewOutline:
		return true
	default:
		return false
	}
}

// Color modes accepted by the --color flag.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultTabStop is the column width of a tab in comment indentation.
const DefaultTabStop = 8

// DefaultTagIntroducer starts inline and block tags.
const DefaultTagIntroducer = "@"

// DefaultExtensions lists the source file extensions scanned by default.
var DefaultExtensions = []string{
	".java", ".go", ".c", ".h", ".cpp", ".kt", ".rs", ".swift", ".js", ".ts",
}

// Config is the root configuration structure.
type Config struct {
	// Dialect selects the literal syntax skipped while finding comments
	// ("java" or "go").
	Dialect string `yaml:"dialect,omitempty" toml:"dialect,omitempty"`

	// TabStop is the tab width used when removing incidental indentation.
	TabStop int `yaml:"tab_stop,omitempty" toml:"tab_stop,omitempty,omitzero"`

	// TagIntroducer is the single character that starts a tag.
	TagIntroducer string `yaml:"tag_introducer,omitempty" toml:"tag_introducer,omitempty"`

	// Extensions lists the file extensions to scan.
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Format is the output format.
	Format OutputFormat `yaml:"format,omitempty" toml:"format,omitempty"`

	// View selects the per-comment output.
	View View `yaml:"view,omitempty" toml:"view,omitempty"`

	// Jobs is the number of files processed in parallel (0 = GOMAXPROCS).
	Jobs int `yaml:"jobs,omitempty" toml:"jobs,omitempty,omitzero"`

	// CLI-only fields (not persisted)

	// Color is the color mode: auto, always or never.
	Color string `yaml:"-" toml:"-"`

	// Strict makes scan errors fail the run.
	Strict bool `yaml:"-" toml:"-"`
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Dialect:       "java",
		TabStop:       DefaultTabStop,
		TagIntroducer: DefaultTagIntroducer,
		Extensions:    slices.Clone(DefaultExtensions),
		Format:        FormatText,
		View:          ViewTokens,
		Color:         ColorAuto,
	}
}

// Introducer returns the tag introducer byte, falling back to '@'.
func (c *Config) Introducer() byte {
	if c == nil || len(c.TagIntroducer) != 1 {
		return DefaultTagIntroducer[0]
	}
	return c.TagIntroducer[0]
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Extensions = slices.Clone(c.Extensions)
	clone.Ignore = slices.Clone(c.Ignore)

	return &clone
}
