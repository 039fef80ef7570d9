package runner

// FileOutcome wraps a FileResult with its resolved path.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result is nil if the file could not be processed.
	Result *FileResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesErrored is the number of files that could not be read.
	FilesErrored int

	// FilesWithComments is the number of files with at least one doc comment.
	FilesWithComments int

	// Comments is the total number of documentation comments.
	Comments int

	// Tokens is the total number of tokens across all comments.
	Tokens int

	// ScanErrors counts malformed comment delimiters.
	ScanErrors int

	// UnclosedTags counts inline tags left open.
	UnclosedTags int
}

// Diagnostics returns the number of problems found in processed files.
func (s Stats) Diagnostics() int {
	return s.ScanErrors + s.UnclosedTags
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasIssues reports whether any file failed or produced diagnostics.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || r.Stats.Diagnostics() > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++

	if len(outcome.Result.Comments) > 0 {
		r.Stats.FilesWithComments++
	}
	r.Stats.Comments += len(outcome.Result.Comments)
	for _, c := range outcome.Result.Comments {
		r.Stats.Tokens += len(c.Tokens)
	}

	for _, diag := range outcome.Result.Diagnostics {
		switch diag.Kind {
		case DiagnosticUnterminatedComment:
			r.Stats.ScanErrors++
		case DiagnosticUnclosedTag:
			r.Stats.UnclosedTags++
		}
	}
}
