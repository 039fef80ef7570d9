// Package doctoken defines the token stream produced for a normalized
// documentation comment body.
package doctoken

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a token in a comment body.
type Kind uint8

// Token kinds. Every byte of a body belongs to exactly one token.
const (
	Text              Kind = iota
	InlineTagStart         // "{@name"
	InlineTagEnd           // "}" closing an inline tag
	BlockTagStart          // "@name" at the start of a line
	CodeSpan               // `code`, delimiters included
	FencedCodeBlock        // ``` ... ``` or ~~~ ... ~~~
	IndentedCodeBlock      // lines indented by four or more columns
)

var kindNames = [...]string{
	Text:              "Text",
	InlineTagStart:    "InlineTagStart",
	InlineTagEnd:      "InlineTagEnd",
	BlockTagStart:     "BlockTagStart",
	CodeSpan:          "CodeSpan",
	FencedCodeBlock:   "FencedCodeBlock",
	IndentedCodeBlock: "IndentedCodeBlock",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for idx, kindName := range kindNames {
		if strings.EqualFold(kindName, name) {
			return Kind(idx), true
		}
	}
	return 0, false
}

// IsTag reports whether the token is part of tag structure.
func (k Kind) IsTag() bool {
	return k == InlineTagStart || k == InlineTagEnd || k == BlockTagStart
}

// IsCode reports whether the token holds literal code.
func (k Kind) IsCode() bool {
	return k == CodeSpan || k == FencedCodeBlock || k == IndentedCodeBlock
}

// Token is a classified span of a comment body.
type Token struct {
	Kind Kind

	// StartOffset is the byte index where this token begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where this token ends (exclusive).
	EndOffset int

	// Name is the tag name for InlineTagStart and BlockTagStart.
	Name string

	// Content is the code inside a CodeSpan, FencedCodeBlock or
	// IndentedCodeBlock, without delimiters or code indentation.
	Content string

	// Delim is the fence or span delimiter character ('`' or '~').
	Delim byte

	// DelimLen is the length of the opening delimiter run.
	DelimLen int

	// Info is the trimmed info string of a FencedCodeBlock.
	Info string
}

// Text returns the body bytes covered by the token.
func (t Token) Text(body []byte) []byte {
	if t.StartOffset < 0 || t.EndOffset > len(body) || t.StartOffset > t.EndOffset {
		return nil
	}
	return body[t.StartOffset:t.EndOffset]
}

// Len returns the length of this token in bytes.
func (t Token) Len() int {
	return t.EndOffset - t.StartOffset
}

// IsEmpty returns true if this token has zero length.
func (t Token) IsEmpty() bool {
	return t.StartOffset == t.EndOffset
}

// Language returns the first word of a fenced block's info string.
func (t Token) Language() string {
	lang, _, _ := strings.Cut(t.Info, " ")
	return lang
}

var (
	// ErrGap is returned when consecutive tokens do not touch.
	ErrGap = errors.New("tokens are not contiguous")

	// ErrCoverage is returned when tokens do not span the whole body.
	ErrCoverage = errors.New("tokens do not cover the body")

	// ErrEmptyToken is returned for a zero-length token.
	ErrEmptyToken = errors.New("empty token")
)

// Validate checks that tokens are non-empty, contiguous and cover
// [0, bodyLen) exactly.
func Validate(tokens []Token, bodyLen int) error {
	if len(tokens) == 0 {
		if bodyLen == 0 {
			return nil
		}
		return fmt.Errorf("%w: no tokens for %d bytes", ErrCoverage, bodyLen)
	}

	if tokens[0].StartOffset != 0 {
		return fmt.Errorf("%w: first token starts at %d", ErrCoverage, tokens[0].StartOffset)
	}
	if last := tokens[len(tokens)-1]; last.EndOffset != bodyLen {
		return fmt.Errorf("%w: last token ends at %d, body is %d bytes", ErrCoverage, last.EndOffset, bodyLen)
	}

	for idx, tok := range tokens {
		if tok.EndOffset <= tok.StartOffset {
			return fmt.Errorf("%w: token %d (%s) at %d", ErrEmptyToken, idx, tok.Kind, tok.StartOffset)
		}
		if idx > 0 && tok.StartOffset != tokens[idx-1].EndOffset {
			return fmt.Errorf("%w: token %d starts at %d, previous ends at %d",
				ErrGap, idx, tok.StartOffset, tokens[idx-1].EndOffset)
		}
	}

	return nil
}

// Concat reassembles the body text from its tokens.
func Concat(tokens []Token, body []byte) string {
	var builder strings.Builder
	for _, tok := range tokens {
		builder.Write(tok.Text(body))
	}
	return builder.String()
}
