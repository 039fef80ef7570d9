package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/doclex/pkg/runner"
	"github.com/yaklabco/doclex/pkg/source"
)

// FormatDiagnostic formats a single diagnostic for terminal output.
func (s *Styles) FormatDiagnostic(path string, pos source.Position, diag runner.Diagnostic, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(path), pos.Line, pos.Column)

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatDiagnosticKind(diag.Kind),
		s.Message.Render(diag.Message),
		s.Kind.Render("("+string(diag.Kind)+")"),
	))

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, pos.Column))
	}

	return builder.String()
}

// FormatDiagnosticKind returns the styled severity label for a diagnostic kind.
func (s *Styles) FormatDiagnosticKind(kind runner.DiagnosticKind) string {
	severity := kind.Severity()
	if severity == "error" {
		return s.Error.Render(severity)
	}
	return s.Warning.Render(severity)
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, commentCount int) string {
	header := s.FilePath.Render(path)
	if commentCount > 0 {
		noun := "comments"
		if commentCount == 1 {
			noun = "comment"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", commentCount, noun))
	}
	return header
}
