// Package lexer tokenizes normalized documentation comment bodies into a
// contiguous stream of text, tag and code tokens.
//
// The lexer recognizes just enough Markdown block structure (fenced and
// indented code blocks, paragraphs, headings, thematic breaks and list
// items) to know where tags must not be recognized. Tags are never found
// inside code spans or code blocks.
package lexer

import (
	"iter"

	"github.com/yaklabco/doclex/pkg/comment"
	"github.com/yaklabco/doclex/pkg/doctoken"
)

// DefaultTagIntroducer starts block tags and, after '{', inline tags.
const DefaultTagIntroducer = '@'

// markdownTabStop is the tab width CommonMark uses for indentation.
const markdownTabStop = 4

// Option configures a Lexer.
type Option func(*Lexer)

// WithTagIntroducer sets the byte that introduces tag names.
func WithTagIntroducer(introducer byte) Option {
	return func(l *Lexer) {
		l.introducer = introducer
	}
}

// scope is an open inline tag.
type scope struct {
	name  string
	depth int // unmatched '{' inside the tag body
}

// Lexer produces tokens for one comment body on demand.
// A Lexer is not safe for concurrent use; create one per body.
type Lexer struct {
	body       []byte
	introducer byte

	pos       int
	textStart int
	queue     []doctoken.Token
	scopes    []scope

	// Block state shared by all inline scopes.
	paragraph  bool
	sawBlank   bool
	listIndent int
}

// New creates a lexer for body.
func New(body []byte, opts ...Option) *Lexer {
	lex := &Lexer{
		body:       body,
		introducer: DefaultTagIntroducer,
	}
	for _, opt := range opts {
		opt(lex)
	}
	return lex
}

// Next returns the next token. The second result is false once the body
// is exhausted.
func (l *Lexer) Next() (doctoken.Token, bool) {
	for len(l.queue) == 0 && l.pos < len(l.body) {
		l.step()
	}
	if len(l.queue) == 0 {
		return doctoken.Token{}, false
	}

	tok := l.queue[0]
	l.queue = l.queue[1:]
	return tok, true
}

// All returns an iterator over the remaining tokens.
func (l *Lexer) All() iter.Seq[doctoken.Token] {
	return func(yield func(doctoken.Token) bool) {
		for {
			tok, ok := l.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// OpenTags returns the names of inline tags still open at the current
// position, innermost last.
func (l *Lexer) OpenTags() []string {
	names := make([]string, 0, len(l.scopes))
	for _, sc := range l.scopes {
		names = append(names, sc.name)
	}
	return names
}

// Tokenize returns every token of body.
func Tokenize(body []byte, opts ...Option) []doctoken.Token {
	if len(body) == 0 {
		return nil
	}

	const initialCapacityDivisor = 8
	tokens := make([]doctoken.Token, 0, len(body)/initialCapacityDivisor+1)
	for tok := range New(body, opts...).All() {
		tokens = append(tokens, tok)
	}
	return tokens
}

// TokenizeComment lazily tokenizes a normalized comment body.
func TokenizeComment(doc *comment.Normalized, opts ...Option) iter.Seq[doctoken.Token] {
	return New([]byte(doc.Body), opts...).All()
}

// step consumes one line, or one multi-line construct, queuing its tokens.
func (l *Lexer) step() {
	if l.atLineStart() && l.blockLine() {
		return
	}
	l.scanInline()
}

func (l *Lexer) atLineStart() bool {
	return l.pos == 0 || l.body[l.pos-1] == '\n'
}

// emit queues tok, first flushing any pending text before it.
func (l *Lexer) emit(tok doctoken.Token) {
	l.flushText(tok.StartOffset)
	l.queue = append(l.queue, tok)
	l.textStart = tok.EndOffset
}

func (l *Lexer) flushText(end int) {
	if end > l.textStart {
		l.queue = append(l.queue, doctoken.Token{
			Kind:        doctoken.Text,
			StartOffset: l.textStart,
			EndOffset:   end,
		})
	}
	l.textStart = end
}
