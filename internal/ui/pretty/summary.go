package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/doclex/pkg/runner"
)

const summaryDividerWidth = 40

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "14 comments, 212 tokens in 3 files, 2 issues (1 error, 1 warning)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	parts := []string{
		fmt.Sprintf("%d %s, %d %s in %d %s",
			stats.Comments, plural(stats.Comments, "comment", "comments"),
			stats.Tokens, plural(stats.Tokens, "token", "tokens"),
			stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files")),
	}

	issues := stats.Diagnostics()
	if issues == 0 && stats.FilesErrored == 0 {
		parts = append(parts, s.Success.Render("no issues"))
		return strings.Join(parts, ", ") + "\n"
	}

	if issues > 0 {
		var breakdown []string
		if stats.ScanErrors > 0 {
			breakdown = append(breakdown,
				s.Error.Render(fmt.Sprintf("%d %s", stats.ScanErrors, plural(stats.ScanErrors, "error", "errors"))))
		}
		if stats.UnclosedTags > 0 {
			breakdown = append(breakdown,
				s.Warning.Render(fmt.Sprintf("%d %s", stats.UnclosedTags, plural(stats.UnclosedTags, "warning", "warnings"))))
		}
		parts = append(parts, fmt.Sprintf("%d %s (%s)", issues, plural(issues, "issue", "issues"), strings.Join(breakdown, ", ")))
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d unreadable %s",
			stats.FilesErrored, plural(stats.FilesErrored, "file", "files"))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label+":", value))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files scanned", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	row("Files with docs", s.SummaryValue.Render(strconv.Itoa(stats.FilesWithComments)))
	if stats.FilesErrored > 0 {
		row("Files unreadable", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	row("Doc comments", s.SummaryValue.Render(strconv.Itoa(stats.Comments)))
	row("Tokens", s.SummaryValue.Render(strconv.Itoa(stats.Tokens)))

	builder.WriteString("\n")

	if stats.ScanErrors > 0 {
		row("Unterminated", s.Error.Render(strconv.Itoa(stats.ScanErrors)))
	}
	if stats.UnclosedTags > 0 {
		row("Unclosed tags", s.Warning.Render(strconv.Itoa(stats.UnclosedTags)))
	}

	switch {
	case stats.ScanErrors > 0 || stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Scan found errors"))
	case stats.UnclosedTags > 0:
		builder.WriteString(s.Warning.Render("Scan completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Scan passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
