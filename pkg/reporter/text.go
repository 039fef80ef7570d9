package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/doclex/internal/ui/pretty"
	"github.com/yaklabco/doclex/pkg/config"
	"github.com/yaklabco/doclex/pkg/doctoken"
	"github.com/yaklabco/doclex/pkg/doctree"
	"github.com/yaklabco/doclex/pkg/runner"
	"github.com/yaklabco/doclex/pkg/source"
)

// Column widths for the token dump.
const (
	positionColWidth  = 8
	tokenKindColWidth = 18
	minQuoteWidth     = 16
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer

	// quoteWidth caps the length of quoted body text.
	quoteWidth int
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)

	width := opts.Width
	if width <= 0 {
		width = pretty.TerminalWidth(opts.Writer)
	}

	return &TextReporter{
		opts:       opts,
		styles:     pretty.NewStyles(colorEnabled),
		bw:         bufio.NewWriterSize(opts.Writer, bufWriterSize),
		quoteWidth: max(width-4-positionColWidth-tokenKindColWidth, minQuoteWidth),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to scan."))
		}
		return 0, nil
	}

	var total int

	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report: %w", err)
		}

		path := displayPath(file.Path, r.opts.WorkingDir)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		fileResult := file.Result
		if fileResult == nil || (len(fileResult.Comments) == 0 && len(fileResult.Diagnostics) == 0) {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(fileResult.Comments)))

		for idx := range fileResult.Comments {
			r.writeComment(fileResult.File, &fileResult.Comments[idx])
		}

		for _, diag := range fileResult.Diagnostics {
			pos := fileResult.File.PositionAt(diag.Offset)

			var sourceLine string
			if r.opts.ShowContext {
				sourceLine = string(fileResult.File.LineContent(pos.Line))
			}

			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(path, pos, diag, sourceLine))
			total++
		}

		// Blank line between files
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// writeComment writes the comment header line and the selected view.
func (r *TextReporter) writeComment(file *source.File, c *runner.Comment) {
	pos := file.PositionAt(c.Raw.StartOffset)

	fmt.Fprintf(r.bw, "  %s %s%s\n",
		r.styles.Location.Render(pos.String()),
		r.styles.Kind.Render(c.Raw.Style.String()),
		r.styles.Dim.Render(fmt.Sprintf(" (%d %s)", len(c.Tokens), tokenNoun(len(c.Tokens)))),
	)

	body := c.Body()

	switch r.opts.View {
	case config.ViewTree:
		for child := c.Tree.FirstChild; child != nil; child = child.Next {
			r.writeNode(body, child, 0)
		}
	case config.ViewOutline:
		r.writeOutline(body, c.Tree)
	default:
		for _, tok := range c.Tokens {
			r.writeToken(file, c, body, tok)
		}
	}
}

func tokenNoun(n int) string {
	if n == 1 {
		return "token"
	}
	return "tokens"
}

// writeToken writes one row of the token dump. Positions are source positions.
func (r *TextReporter) writeToken(file *source.File, c *runner.Comment, body []byte, tok doctoken.Token) {
	pos := file.PositionAt(c.SourceOffset(tok.StartOffset))

	fmt.Fprintf(r.bw, "    %s%s%s\n",
		r.styles.Location.Render(padRight(pos.String(), positionColWidth)),
		r.styles.TokenKind.Render(padRight(tok.Kind.String(), tokenKindColWidth)),
		r.tokenDetail(body, tok),
	)
}

func (r *TextReporter) tokenDetail(body []byte, tok doctoken.Token) string {
	switch tok.Kind {
	case doctoken.InlineTagStart, doctoken.BlockTagStart:
		return r.styles.TagName.Render(string(tok.Text(body)))
	case doctoken.InlineTagEnd:
		return r.styles.Guide.Render(string(tok.Text(body)))
	case doctoken.CodeSpan, doctoken.IndentedCodeBlock:
		return r.styles.Code.Render(r.quote(tok.Content))
	case doctoken.FencedCodeBlock:
		detail := r.styles.Code.Render(r.quote(tok.Content))
		if lang := tok.Language(); lang != "" {
			detail += r.styles.Dim.Render(" lang=" + lang)
		}
		return detail
	default:
		return r.styles.Text.Render(r.quote(string(tok.Text(body))))
	}
}

func (r *TextReporter) quote(text string) string {
	return truncate(strconv.Quote(text), r.quoteWidth)
}

// writeNode writes a tree node and its descendants, indented by depth.
func (r *TextReporter) writeNode(body []byte, node *doctree.Node, depth int) {
	indent := "    " + strings.Repeat(r.styles.Guide.Render("│ "), depth)

	var detail string
	switch node.Kind {
	case doctree.NodeMarkdown:
		detail = " " + r.styles.Text.Render(r.quote(string(node.Text(body))))
	case doctree.NodeErroneous:
		detail = " " + r.styles.Warning.Render(node.Name+" (unclosed)")
	default:
		detail = " " + r.styles.TagName.Render(node.Name)
	}

	if node.Group != doctree.GroupNone {
		detail += r.styles.Dim.Render(" [" + node.Group.String() + "]")
	}

	fmt.Fprintf(r.bw, "%s%s%s\n", indent, r.styles.TokenKind.Render(node.Kind.String()), detail)

	for child := node.FirstChild; child != nil; child = child.Next {
		r.writeNode(body, child, depth+1)
	}
}

// writeOutline writes the block structure of the description followed by
// the block tags.
func (r *TextReporter) writeOutline(body []byte, root *doctree.Node) {
	for _, block := range doctree.Outline(body, root) {
		var detail string
		switch block.Kind {
		case doctree.BlockHeading:
			detail = fmt.Sprintf(" h%d", block.Level)
		case doctree.BlockList:
			style := "bullet"
			if block.Ordered {
				style = "ordered"
			}
			detail = fmt.Sprintf(" %s, %d %s", style, block.Items, itemNoun(block.Items))
		case doctree.BlockCodeBlock:
			if block.Language != "" {
				detail = " lang=" + block.Language
			}
		}

		line := "    " + r.styles.TokenKind.Render(block.Kind.String()) + r.styles.Dim.Render(detail)
		if block.Text != "" {
			line += " " + r.styles.Text.Render(r.quote(block.Text))
		}
		fmt.Fprintln(r.bw, line)
	}

	for _, tag := range root.BlockTags() {
		fmt.Fprintf(r.bw, "    %s %s\n",
			r.styles.TokenKind.Render("tag"),
			r.styles.TagName.Render(tag.Name),
		)
	}
}

func itemNoun(n int) string {
	if n == 1 {
		return "item"
	}
	return "items"
}
