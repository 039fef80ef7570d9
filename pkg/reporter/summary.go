package reporter

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/doclex/internal/ui/pretty"
	"github.com/yaklabco/doclex/pkg/doctree"
	"github.com/yaklabco/doclex/pkg/runner"
)

// Table layout constants for summary output.
const (
	tableWidth        = 80
	tagColWidth       = 30
	fileColWidth      = 50
	numColWidth       = 9
	maxTagNameLength  = 28
	maxFilePathLength = 48
)

// TagUsage counts how often a tag name appears.
type TagUsage struct {
	Name  string
	Uses  int
	Files int
}

// SummaryReporter formats results as aggregate tables followed by run totals.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No files to scan."))
		return 0, nil
	}

	if tags := CountTags(result); len(tags) > 0 {
		r.renderTagTable(tags)
		fmt.Fprintln(r.bw)
	}

	r.renderFileTable(result)

	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))

	return result.Stats.Diagnostics(), nil
}

// CountTags tallies tag names across every comment, most used first.
func CountTags(result *runner.Result) []TagUsage {
	byName := make(map[string]*TagUsage)

	for _, file := range result.Files {
		if file.Result == nil {
			continue
		}

		seen := make(map[string]bool)
		for _, c := range file.Result.Comments {
			for _, name := range doctree.Tags(c.Tree) {
				usage, ok := byName[name]
				if !ok {
					usage = &TagUsage{Name: name}
					byName[name] = usage
				}
				usage.Uses++
				if !seen[name] {
					seen[name] = true
					usage.Files++
				}
			}
		}
	}

	tags := make([]TagUsage, 0, len(byName))
	for _, usage := range byName {
		tags = append(tags, *usage)
	}

	slices.SortFunc(tags, func(a, b TagUsage) int {
		if c := cmp.Compare(b.Uses, a.Uses); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	return tags
}

func (r *SummaryReporter) renderTagTable(tags []TagUsage) {
	fmt.Fprintln(r.bw, r.styles.Bold.Render("Tags"))
	fmt.Fprintln(r.bw, r.styles.Dim.Render(strings.Repeat("─", tableWidth)))

	// Header - pad first, then style
	fmt.Fprintf(r.bw, "%s %s %s\n",
		r.styles.Bold.Render(padRight("Tag", tagColWidth)),
		r.styles.Bold.Render(padLeft("Uses", numColWidth)),
		r.styles.Bold.Render(padLeft("Files", numColWidth)),
	)
	fmt.Fprintln(r.bw, r.styles.Dim.Render(strings.Repeat("─", tableWidth)))

	for _, tag := range tags {
		name := tag.Name
		if len(name) > maxTagNameLength {
			name = name[:maxTagNameLength] + "…"
		}

		fmt.Fprintf(r.bw, "%s %s %s\n",
			r.styles.TagName.Render(padRight(name, tagColWidth)),
			padLeft(strconv.Itoa(tag.Uses), numColWidth),
			padLeft(strconv.Itoa(tag.Files), numColWidth),
		)
	}
}

func (r *SummaryReporter) renderFileTable(result *runner.Result) {
	fmt.Fprintln(r.bw, r.styles.Bold.Render("Files"))
	fmt.Fprintln(r.bw, r.styles.Dim.Render(strings.Repeat("─", tableWidth)))

	fmt.Fprintf(r.bw, "%s %s %s %s\n",
		r.styles.Bold.Render(padRight("File", fileColWidth)),
		r.styles.Bold.Render(padLeft("Comments", numColWidth)),
		r.styles.Bold.Render(padLeft("Tokens", numColWidth)),
		r.styles.Bold.Render(padLeft("Issues", numColWidth)),
	)
	fmt.Fprintln(r.bw, r.styles.Dim.Render(strings.Repeat("─", tableWidth)))

	for _, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		// Pad first, then style
		paddedPath := padRight(path, fileColWidth)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s %s\n",
				r.styles.Failure.Render(paddedPath),
				r.styles.Error.Render(padLeft("unreadable", numColWidth*3+2)),
			)
			continue
		}
		if file.Result == nil {
			continue
		}

		var tokens int
		for _, c := range file.Result.Comments {
			tokens += len(c.Tokens)
		}
		issues := len(file.Result.Diagnostics)

		styledPath := paddedPath
		if issues > 0 {
			styledPath = r.styles.Warning.Render(paddedPath)
		}

		fmt.Fprintf(r.bw, "%s %s %s %s\n",
			styledPath,
			padLeft(strconv.Itoa(len(file.Result.Comments)), numColWidth),
			padLeft(strconv.Itoa(tokens), numColWidth),
			padLeft(strconv.Itoa(issues), numColWidth),
		)
	}
}
