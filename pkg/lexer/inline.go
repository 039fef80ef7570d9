package lexer

import (
	"bytes"
	"strings"

	"github.com/yaklabco/doclex/pkg/doctoken"
)

// scanInline scans from l.pos through the end of the current line.
func (l *Lexer) scanInline() {
	for l.pos < len(l.body) {
		switch l.body[l.pos] {
		case '\n':
			l.pos++
			l.flushText(l.pos)
			return
		case '\\':
			l.pos++
			if l.pos < len(l.body) && (l.body[l.pos] == '`' || l.body[l.pos] == '\\') {
				l.pos++
			}
		case '`':
			l.codeSpan()
		case '{':
			l.openBrace()
		case '}':
			l.closeBrace()
		default:
			l.pos++
		}
	}
	l.flushText(l.pos)
}

// codeSpan tries to match the backtick run at l.pos with a closing run of
// the same length. On failure the whole run is literal text.
func (l *Lexer) codeSpan() {
	start := l.pos
	run := runLength(l.body, start, '`')
	inTag := len(l.scopes) > 0
	depth := 0

	for pos := start + run; pos < len(l.body); {
		switch l.body[pos] {
		case '`':
			closing := runLength(l.body, pos, '`')
			if closing == run {
				l.emit(doctoken.Token{
					Kind:        doctoken.CodeSpan,
					StartOffset: start,
					EndOffset:   pos + closing,
					Content:     codeSpanContent(l.body[start+run : pos]),
					Delim:       '`',
					DelimLen:    run,
				})
				l.pos = pos + closing
				return
			}
			pos += closing
		case '\n':
			if l.endsCodeSpan(pos + 1) {
				l.pos = start + run
				return
			}
			pos++
		case '{':
			if inTag {
				depth++
			}
			pos++
		case '}':
			if inTag {
				if depth == 0 {
					l.pos = start + run
					return
				}
				depth--
			}
			pos++
		default:
			pos++
		}
	}

	l.pos = start + run
}

// endsCodeSpan reports whether the line at pos stops a code span look-ahead.
func (l *Lexer) endsCodeSpan(pos int) bool {
	if pos >= len(l.body) {
		return true
	}
	ln := l.lineAt(pos)
	if ln.blank {
		return true
	}
	if l.relIndent(ln) > 3 {
		return false
	}
	if _, isFence := l.openFence(ln); isFence {
		return true
	}
	return interruptsParagraph(l.body[ln.text:ln.end])
}

// interruptsParagraph reports whether a line ends the paragraph before it:
// an ATX heading, a Setext underline, a thematic break, or a list item that
// has content and, if ordered, starts at 1.
func interruptsParagraph(text []byte) bool {
	if isATXHeading(text) || isSetextUnderline(text) || isThematicBreak(text) {
		return true
	}
	width, ok := listMarkerWidth(text)
	if !ok || width >= len(text) || len(bytes.TrimLeft(text[width:], " \t")) == 0 {
		return false
	}
	if isDigit(text[0]) {
		return text[0] == '1' && !isDigit(text[1])
	}
	return true
}

// codeSpanContent converts line endings to spaces and strips one space
// from each side when both are present and the content is not all spaces.
func codeSpanContent(raw []byte) string {
	content := strings.ReplaceAll(string(raw), "\n", " ")
	if len(content) >= 2 && content[0] == ' ' && content[len(content)-1] == ' ' &&
		strings.Trim(content, " ") != "" {
		content = content[1 : len(content)-1]
	}
	return content
}

func (l *Lexer) openBrace() {
	if l.pos+1 < len(l.body) && l.body[l.pos+1] == l.introducer {
		nameStart := l.pos + 2
		if nameEnd := l.identEnd(nameStart); nameEnd > nameStart {
			name := string(l.body[nameStart:nameEnd])
			l.emit(doctoken.Token{
				Kind:        doctoken.InlineTagStart,
				StartOffset: l.pos,
				EndOffset:   nameEnd,
				Name:        name,
			})
			l.scopes = append(l.scopes, scope{name: name})
			l.pos = nameEnd
			return
		}
	}

	if len(l.scopes) > 0 {
		l.scopes[len(l.scopes)-1].depth++
	}
	l.pos++
}

func (l *Lexer) closeBrace() {
	if len(l.scopes) == 0 {
		l.pos++
		return
	}

	top := &l.scopes[len(l.scopes)-1]
	if top.depth > 0 {
		top.depth--
		l.pos++
		return
	}

	l.emit(doctoken.Token{
		Kind:        doctoken.InlineTagEnd,
		StartOffset: l.pos,
		EndOffset:   l.pos + 1,
		Name:        top.name,
	})
	l.scopes = l.scopes[:len(l.scopes)-1]
	l.pos++
}
