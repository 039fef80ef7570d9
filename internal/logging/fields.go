// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldConfigLayer = "layer"
	FieldDialect     = "dialect"
	FieldTabStop     = "tab_stop"
	FieldFormat      = "format"
	FieldView        = "view"
	FieldJobs        = "jobs"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldComments        = "comments"
	FieldTokens          = "tokens"
	FieldScanErrors      = "scan_errors"
	FieldOffset          = "offset"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
