package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/yaklabco/doclex/pkg/comment"
	"github.com/yaklabco/doclex/pkg/config"
	"github.com/yaklabco/doclex/pkg/doctoken"
	"github.com/yaklabco/doclex/pkg/doctree"
	"github.com/yaklabco/doclex/pkg/lexer"
	"github.com/yaklabco/doclex/pkg/source"
)

// DiagnosticKind classifies a problem found while processing a file.
type DiagnosticKind string

const (
	// DiagnosticUnterminatedComment is a block comment with no closing delimiter.
	DiagnosticUnterminatedComment DiagnosticKind = "unterminated-comment"

	// DiagnosticUnclosedTag is an inline tag whose closing brace is missing.
	DiagnosticUnclosedTag DiagnosticKind = "unclosed-tag"
)

// Severity returns "error" for unterminated comments, which hide everything
// after them, and "warning" otherwise.
func (k DiagnosticKind) Severity() string {
	if k == DiagnosticUnterminatedComment {
		return "error"
	}
	return "warning"
}

// Diagnostic is a problem found in a source file. Processing continues past
// diagnostics.
type Diagnostic struct {
	Kind DiagnosticKind

	// Offset is the source byte offset the problem starts at.
	Offset int

	Message string
}

// Comment is one documentation comment carried through the pipeline.
type Comment struct {
	Raw comment.RawComment

	// Doc is the normalized body and its offset map.
	Doc *comment.Normalized

	// Tokens is the complete token stream of Doc.Body.
	Tokens []doctoken.Token

	// Tree is the doc tree built from Tokens.
	Tree *doctree.Node
}

// Body returns the normalized comment body.
func (c *Comment) Body() []byte {
	return []byte(c.Doc.Body)
}

// SourceOffset maps a body offset back to the source file.
func (c *Comment) SourceOffset(bodyOffset int) int {
	return c.Doc.Map.SourceOffset(bodyOffset)
}

// FileResult is the outcome of processing one source file.
type FileResult struct {
	File        *source.File
	Comments    []Comment
	Diagnostics []Diagnostic
}

// ProcessFile reads path from fsys and processes its documentation comments.
func ProcessFile(ctx context.Context, fsys afero.Fs, path string, cfg *config.Config) (*FileResult, error) {
	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return ProcessSource(ctx, source.NewFile(path, content), cfg)
}

// ProcessSource extracts, normalizes, tokenizes and builds a tree for every
// documentation comment in file. Comments share no state.
func ProcessSource(ctx context.Context, file *source.File, cfg *config.Config) (*FileResult, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	raws, scanErrs := comment.Extract(file.Content, DialectFor(file.Path, cfg))

	result := &FileResult{
		File:     file,
		Comments: make([]Comment, 0, len(raws)),
	}

	for _, scanErr := range scanErrs {
		diag := Diagnostic{Kind: DiagnosticUnterminatedComment, Message: scanErr.Error()}
		var se *comment.ScanError
		if errors.As(scanErr, &se) {
			diag.Offset = se.Offset
			diag.Message = se.Err.Error()
		}
		result.Diagnostics = append(result.Diagnostics, diag)
	}

	normalizer := comment.Normalizer{TabStop: cfg.TabStop}
	introducer := lexer.WithTagIntroducer(cfg.Introducer())

	for _, raw := range raws {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("process %s: %w", file.Path, err)
		}

		doc := normalizer.Normalize(raw)
		body := []byte(doc.Body)
		tokens := slices.Collect(lexer.New(body, introducer).All())

		c := Comment{
			Raw:    raw,
			Doc:    doc,
			Tokens: tokens,
			Tree:   doctree.Build(body, slices.Values(tokens)),
		}

		for _, node := range doctree.FindByKind(c.Tree, doctree.NodeErroneous) {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind:    DiagnosticUnclosedTag,
				Offset:  c.SourceOffset(node.StartOffset),
				Message: fmt.Sprintf("unclosed inline tag %q", node.Name),
			})
		}

		result.Comments = append(result.Comments, c)
	}

	slices.SortStableFunc(result.Diagnostics, func(a, b Diagnostic) int {
		return a.Offset - b.Offset
	})

	return result, nil
}

// DialectFor returns the scanning dialect for path. Go sources always use
// the Go dialect because raw strings may contain comment markers.
func DialectFor(path string, cfg *config.Config) comment.Dialect {
	if strings.EqualFold(filepath.Ext(path), ".go") {
		return comment.DialectGo
	}
	if cfg != nil && comment.Dialect(cfg.Dialect).IsValid() {
		return comment.Dialect(cfg.Dialect)
	}
	return comment.DialectJava
}
