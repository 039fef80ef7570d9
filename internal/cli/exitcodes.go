package cli

import (
	"errors"

	"github.com/yaklabco/doclex/internal/configloader"
	"github.com/yaklabco/doclex/pkg/runner"
)

// Exit codes for doclex.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitScanErrors indicates unterminated comments were found in strict mode.
	ExitScanErrors = 1

	// ExitScanWarnings indicates unclosed inline tags were found in strict mode.
	ExitScanWarnings = 2

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates files that could not be read.
	ExitIOError = 74
)

var (
	// ErrScanIssuesFound is returned in strict mode when unterminated
	// comments were found.
	ErrScanIssuesFound = errors.New("scan issues found")

	// ErrScanWarningsFound is returned in strict mode when only unclosed
	// inline tags were found.
	ErrScanWarningsFound = errors.New("scan warnings found")

	// ErrUnreadableFiles is returned when some files could not be read.
	ErrUnreadableFiles = errors.New("some files could not be read")
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.Stats.FilesErrored > 0 {
		return ExitIOError
	}

	if !strict {
		return ExitSuccess
	}

	if result.Stats.ScanErrors > 0 {
		return ExitScanErrors
	}

	if result.Stats.UnclosedTags > 0 {
		return ExitScanWarnings
	}

	return ExitSuccess
}

// resultError converts a result exit code into the matching sentinel.
func resultError(code int) error {
	switch code {
	case ExitScanErrors:
		return ErrScanIssuesFound
	case ExitScanWarnings:
		return ErrScanWarningsFound
	case ExitIOError:
		return ErrUnreadableFiles
	default:
		return nil
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrScanIssuesFound):
		return ExitScanErrors
	case errors.Is(err, ErrScanWarningsFound):
		return ExitScanWarnings
	case errors.Is(err, ErrUnreadableFiles):
		return ExitIOError
	case errors.As(err, &validationErr):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}

// IsResultError reports whether err only signals the outcome of a scan and
// was already reported to the user.
func IsResultError(err error) bool {
	return errors.Is(err, ErrScanIssuesFound) ||
		errors.Is(err, ErrScanWarningsFound) ||
		errors.Is(err, ErrUnreadableFiles)
}
