package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/doclex/pkg/doctree"
	"github.com/yaklabco/doclex/pkg/runner"
	"github.com/yaklabco/doclex/pkg/source"
)

// jsonSchemaVersion is bumped whenever the JSON output changes shape.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string      `json:"version"`
	Files   []JSONFile  `json:"files"`
	Summary JSONSummary `json:"summary"`
}

// JSONFile represents a single file's results.
type JSONFile struct {
	Path        string           `json:"path"`
	Comments    []JSONComment    `json:"comments"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Error       string           `json:"error,omitempty"`
}

// JSONPosition is a source location.
type JSONPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// JSONComment represents one documentation comment.
type JSONComment struct {
	Style         string       `json:"style"`
	Start         JSONPosition `json:"start"`
	End           JSONPosition `json:"end"`
	Body          string       `json:"body"`
	FirstSentence string       `json:"firstSentence,omitempty"`
	Tags          []string     `json:"tags,omitempty"`
	Tokens        []JSONToken  `json:"tokens,omitempty"`
}

// JSONToken represents a token. Start and End are body offsets; Line and
// Column locate the token in the source file.
type JSONToken struct {
	Kind    string `json:"kind"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Text    string `json:"text"`
	Name    string `json:"name,omitempty"`
	Content string `json:"content,omitempty"`
	Info    string `json:"info,omitempty"`
}

// JSONDiagnostic represents a single diagnostic.
type JSONDiagnostic struct {
	Kind     string       `json:"kind"`
	Severity string       `json:"severity"`
	Message  string       `json:"message"`
	Position JSONPosition `json:"position"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered   int            `json:"filesDiscovered"`
	FilesProcessed    int            `json:"filesProcessed"`
	FilesErrored      int            `json:"filesErrored"`
	FilesWithComments int            `json:"filesWithComments"`
	Comments          int            `json:"comments"`
	Tokens            int            `json:"tokens"`
	TotalIssues       int            `json:"totalIssues"`
	BySeverity        map[string]int `json:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFile, 0),
		Summary: JSONSummary{
			BySeverity: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary.FilesDiscovered = stats.FilesDiscovered
	output.Summary.FilesProcessed = stats.FilesProcessed
	output.Summary.FilesErrored = stats.FilesErrored
	output.Summary.FilesWithComments = stats.FilesWithComments
	output.Summary.Comments = stats.Comments
	output.Summary.Tokens = stats.Tokens

	output.Files = make([]JSONFile, 0, len(result.Files))

	for _, file := range result.Files {
		jsonFile := JSONFile{
			Path:        displayPath(file.Path, r.opts.WorkingDir),
			Comments:    make([]JSONComment, 0),
			Diagnostics: make([]JSONDiagnostic, 0),
		}

		if file.Error != nil {
			jsonFile.Error = file.Error.Error()
		}

		if fileResult := file.Result; fileResult != nil {
			for idx := range fileResult.Comments {
				jsonFile.Comments = append(jsonFile.Comments, r.buildComment(fileResult.File, &fileResult.Comments[idx]))
			}

			for _, diag := range fileResult.Diagnostics {
				severity := diag.Kind.Severity()
				jsonFile.Diagnostics = append(jsonFile.Diagnostics, JSONDiagnostic{
					Kind:     string(diag.Kind),
					Severity: severity,
					Message:  diag.Message,
					Position: position(fileResult.File, diag.Offset),
				})
				output.Summary.TotalIssues++
				output.Summary.BySeverity[severity]++
			}
		}

		output.Files = append(output.Files, jsonFile)
	}

	return output
}

func (r *JSONReporter) buildComment(file *source.File, c *runner.Comment) JSONComment {
	body := c.Body()

	jsonComment := JSONComment{
		Style:         c.Raw.Style.String(),
		Start:         position(file, c.Raw.StartOffset),
		End:           position(file, c.Raw.EndOffset()),
		Body:          c.Doc.Body,
		FirstSentence: firstSentence(body, c.Tree),
		Tags:          doctree.Tags(c.Tree),
	}

	if r.opts.Compact {
		return jsonComment
	}

	jsonComment.Tokens = make([]JSONToken, 0, len(c.Tokens))
	for _, tok := range c.Tokens {
		pos := file.PositionAt(c.SourceOffset(tok.StartOffset))
		jsonComment.Tokens = append(jsonComment.Tokens, JSONToken{
			Kind:    tok.Kind.String(),
			Start:   tok.StartOffset,
			End:     tok.EndOffset,
			Line:    pos.Line,
			Column:  pos.Column,
			Text:    string(tok.Text(body)),
			Name:    tok.Name,
			Content: tok.Content,
			Info:    tok.Info,
		})
	}

	return jsonComment
}

func position(file *source.File, offset int) JSONPosition {
	pos := file.PositionAt(offset)
	return JSONPosition{Offset: offset, Line: pos.Line, Column: pos.Column}
}

// firstSentence returns the body text spanned by the first-sentence nodes.
func firstSentence(body []byte, root *doctree.Node) string {
	nodes := root.FirstSentence()
	if len(nodes) == 0 {
		return ""
	}
	start, end := nodes[0].StartOffset, nodes[len(nodes)-1].EndOffset
	if start < 0 || end > len(body) || start > end {
		return ""
	}
	return string(body[start:end])
}
