package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/doclex/pkg/comment"
	"github.com/yaklabco/doclex/pkg/config"
)

// maxTabStop bounds the configurable tab width.
const maxTabStop = 16

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "tab_stop").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Dialect != "" && !comment.Dialect(cfg.Dialect).IsValid() {
		result.addError("dialect", cfg.Dialect,
			fmt.Sprintf("invalid dialect %q; must be one of: java, go", cfg.Dialect))
	}

	if cfg.TabStop < 0 || cfg.TabStop > maxTabStop {
		result.addError("tab_stop", cfg.TabStop,
			fmt.Sprintf("tab_stop must be between 1 and %d (0 means default)", maxTabStop))
	}

	if cfg.TagIntroducer != "" {
		validateIntroducer(cfg.TagIntroducer, result)
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format,
			fmt.Sprintf("invalid format %q; must be one of: text, json, summary", cfg.Format))
	}

	if cfg.View != "" && !cfg.View.IsValid() {
		result.addError("view", cfg.View,
			fmt.Sprintf("invalid view %q; must be one of: tokens, tree, outline", cfg.View))
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	switch cfg.Color {
	case "", config.ColorAuto, config.ColorAlways, config.ColorNever:
	default:
		result.addError("color", cfg.Color,
			fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Color))
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("extensions[%d]", i),
				Value:   ext,
				Message: fmt.Sprintf("extension %q has no leading dot; it will match nothing", ext),
			})
		}
	}

	validateIgnorePatterns(cfg, result)

	return result
}

func (r *ValidationResult) addError(field string, value any, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message})
}

// validateIntroducer requires a single punctuation byte that cannot be
// confused with the braces, backticks, or whitespace the lexer relies on.
func validateIntroducer(introducer string, result *ValidationResult) {
	if len(introducer) != 1 {
		result.addError("tag_introducer", introducer, "tag_introducer must be a single character")
		return
	}

	c := introducer[0]
	if c <= ' ' || c > '~' || strings.ContainsRune("{}`\\", rune(c)) ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
		result.addError("tag_introducer", introducer,
			fmt.Sprintf("invalid tag_introducer %q; must be ASCII punctuation other than braces, backtick or backslash", introducer))
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, fmt.Sprintf("invalid glob pattern: %v", err))
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
