package comment

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrUnterminatedComment is reported for a block comment with no closing delimiter.
var ErrUnterminatedComment = errors.New("unterminated comment")

// Dialect selects the literal syntax the scanner must skip over so that
// comment markers inside strings are not mistaken for comments.
type Dialect string

const (
	// DialectJava skips "...", '...' and """ text blocks.
	DialectJava Dialect = "java"

	// DialectGo skips "...", '...' and `raw` strings.
	DialectGo Dialect = "go"
)

// IsValid returns true if the dialect is known.
func (d Dialect) IsValid() bool {
	switch d {
	case DialectJava, DialectGo:
		return true
	default:
		return false
	}
}

// Kind classifies a comment fragment found by Scan.
type Kind uint8

const (
	KindLine     Kind = iota // "//"
	KindDocLine              // "///"
	KindBlock                // "/*"
	KindDocBlock             // "/**"
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindDocLine:
		return "doc-line"
	case KindBlock:
		return "block"
	case KindDocBlock:
		return "doc-block"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsDoc reports whether the fragment uses a documentation marker.
func (k Kind) IsDoc() bool {
	return k == KindDocLine || k == KindDocBlock
}

// Fragment is one physical comment as it appears in the source.
// Line comments end before the line terminator.
type Fragment struct {
	Kind  Kind
	Start int
	End   int

	// Unterminated is set for a block comment that runs to end of input.
	Unterminated bool
}

// ScanError reports a malformed comment delimiter.
type ScanError struct {
	Offset int
	Err    error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("offset %d: %v", e.Offset, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// maxCharLiteral bounds the search for a closing quote so that a stray
// apostrophe (Rust lifetimes, prose in macros) cannot hide a comment.
const maxCharLiteral = 10

// Scan isolates the comments in src. It returns every comment fragment in
// source order and one ScanError per unterminated block comment.
func Scan(src []byte, dialect Dialect) ([]Fragment, []error) {
	var (
		frags []Fragment
		errs  []error
	)

	pos := 0
	for pos < len(src) {
		switch src[pos] {
		case '/':
			if pos+1 >= len(src) {
				pos++
				continue
			}
			switch src[pos+1] {
			case '/':
				frag := scanLineComment(src, pos)
				frags = append(frags, frag)
				pos = frag.End
			case '*':
				frag := scanBlockComment(src, pos)
				if frag.Unterminated {
					errs = append(errs, &ScanError{Offset: pos, Err: ErrUnterminatedComment})
				}
				frags = append(frags, frag)
				pos = frag.End
			default:
				pos++
			}
		case '"':
			if dialect == DialectJava && bytes.HasPrefix(src[pos:], []byte(`"""`)) {
				pos = skipTextBlock(src, pos+3)
			} else {
				pos = skipQuoted(src, pos+1, '"', len(src))
			}
		case '\'':
			pos = skipCharLiteral(src, pos)
		case '`':
			if dialect == DialectGo {
				pos = skipRawString(src, pos+1)
			} else {
				pos++
			}
		default:
			pos++
		}
	}

	return frags, errs
}

func scanLineComment(src []byte, start int) Fragment {
	end := start
	for end < len(src) && src[end] != '\n' {
		end++
	}
	if end > start && src[end-1] == '\r' {
		end--
	}

	kind := KindLine
	text := src[start:end]
	if bytes.HasPrefix(text, []byte("///")) && !bytes.HasPrefix(text, []byte("////")) {
		kind = KindDocLine
	}

	return Fragment{Kind: kind, Start: start, End: end}
}

func scanBlockComment(src []byte, start int) Fragment {
	kind := KindBlock
	if bytes.HasPrefix(src[start:], []byte("/**")) && !bytes.HasPrefix(src[start:], []byte("/**/")) {
		kind = KindDocBlock
	}

	closeIdx := bytes.Index(src[start+2:], []byte("*/"))
	if closeIdx < 0 {
		return Fragment{Kind: kind, Start: start, End: len(src), Unterminated: true}
	}

	return Fragment{Kind: kind, Start: start, End: start + 2 + closeIdx + 2}
}

// skipQuoted returns the offset after the closing quote, stopping at a
// newline or limit for malformed literals.
func skipQuoted(src []byte, pos int, quote byte, limit int) int {
	for pos < len(src) && pos < limit {
		switch src[pos] {
		case '\\':
			pos += 2
		case '\n':
			return pos
		case quote:
			return pos + 1
		default:
			pos++
		}
	}
	return min(pos, len(src))
}

func skipCharLiteral(src []byte, start int) int {
	end := skipQuoted(src, start+1, '\'', start+maxCharLiteral)
	if end > start+1 && end <= len(src) && src[end-1] == '\'' {
		return end
	}
	return start + 1
}

func skipTextBlock(src []byte, pos int) int {
	for pos < len(src) {
		if src[pos] == '\\' {
			pos += 2
			continue
		}
		if bytes.HasPrefix(src[pos:], []byte(`"""`)) {
			return pos + 3
		}
		pos++
	}
	return len(src)
}

func skipRawString(src []byte, pos int) int {
	idx := bytes.IndexByte(src[pos:], '`')
	if idx < 0 {
		return len(src)
	}
	return pos + idx + 1
}
