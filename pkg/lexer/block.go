package lexer

import (
	"bytes"
	"strings"

	"github.com/yaklabco/doclex/pkg/doctoken"
)

// line describes one line of the body.
type line struct {
	start  int
	end    int // offset of the '\n', or len(body)
	next   int // start of the following line
	indent int // indentation in columns
	text   int // offset of the first non-whitespace byte
	blank  bool
}

func (l *Lexer) lineAt(start int) line {
	end := start
	for end < len(l.body) && l.body[end] != '\n' {
		end++
	}
	next := end
	if end < len(l.body) {
		next = end + 1
	}

	col, pos := 0, start
	for pos < end && isSpace(l.body[pos]) {
		if l.body[pos] == '\t' {
			col = (col/markdownTabStop + 1) * markdownTabStop
		} else {
			col++
		}
		pos++
	}

	return line{start: start, end: end, next: next, indent: col, text: pos, blank: pos == end}
}

// relIndent returns the indentation of ln relative to the current list item.
func (l *Lexer) relIndent(ln line) int {
	if ln.indent < l.listIndent {
		return 0
	}
	return ln.indent - l.listIndent
}

// blockLine handles the block structure at the start of a line. It returns
// true if it consumed a whole construct; otherwise inline scanning continues
// from l.pos.
func (l *Lexer) blockLine() bool {
	ln := l.lineAt(l.pos)
	if ln.blank {
		l.sawBlank = true
		l.paragraph = false
		return false
	}

	if l.listIndent > 0 && ln.indent < l.listIndent && (l.sawBlank || !l.paragraph) {
		l.listIndent = 0
	}
	l.sawBlank = false
	rel := l.relIndent(ln)

	if rel <= 3 {
		if f, ok := l.openFence(ln); ok {
			l.fencedBlock(ln, f)
			l.paragraph = false
			return true
		}
	}

	if rel >= 4 && !l.paragraph {
		l.indentedBlock(ln)
		l.paragraph = false
		return true
	}

	if nameEnd, ok := l.blockTagAt(ln); ok {
		l.scopes = l.scopes[:0]
		l.emit(doctoken.Token{
			Kind:        doctoken.BlockTagStart,
			StartOffset: ln.text,
			EndOffset:   nameEnd,
			Name:        string(l.body[ln.text+1 : nameEnd]),
		})
		l.pos = nameEnd
		l.paragraph = true
		l.listIndent = 0
		return false
	}

	if rel > 3 {
		// Lazy paragraph continuation.
		l.paragraph = true
		return false
	}

	text := l.body[ln.text:ln.end]
	switch {
	case isATXHeading(text):
		l.paragraph = false
	case l.paragraph && isSetextUnderline(text):
		l.paragraph = false
	case isThematicBreak(text):
		l.paragraph = false
	default:
		if width, ok := listMarkerWidth(text); ok {
			l.listIndent = ln.indent + width
		}
		l.paragraph = true
	}

	return false
}

// fence is an open fenced code block.
type fence struct {
	char   byte
	length int
	indent int
	info   string
}

func (l *Lexer) openFence(ln line) (fence, bool) {
	text := l.body[ln.text:ln.end]
	if len(text) == 0 || (text[0] != '`' && text[0] != '~') {
		return fence{}, false
	}

	run := runLength(text, 0, text[0])
	if run < 3 {
		return fence{}, false
	}

	info := text[run:]
	if text[0] == '`' && bytes.IndexByte(info, '`') >= 0 {
		return fence{}, false
	}

	return fence{
		char:   text[0],
		length: run,
		indent: ln.indent,
		info:   strings.TrimSpace(string(info)),
	}, true
}

func (l *Lexer) closesFence(ln line, f fence) bool {
	if ln.indent-l.listIndent > 3 {
		return false
	}
	text := l.body[ln.text:ln.end]
	run := runLength(text, 0, f.char)
	if run < f.length {
		return false
	}
	return len(bytes.TrimRight(text[run:], " \t")) == 0
}

// fencedBlock emits a FencedCodeBlock from the opening line through the
// closing fence, or to the end of the body when no closing fence exists.
func (l *Lexer) fencedBlock(open line, f fence) {
	end, contentEnd := -1, len(l.body)
	for pos := open.next; pos < len(l.body); {
		ln := l.lineAt(pos)
		if l.closesFence(ln, f) {
			end, contentEnd = ln.end, ln.start
			break
		}
		pos = ln.next
	}

	if end < 0 {
		end = len(l.body)
		if end > open.end && l.body[end-1] == '\n' {
			end--
		}
	}

	l.emit(doctoken.Token{
		Kind:        doctoken.FencedCodeBlock,
		StartOffset: open.start,
		EndOffset:   end,
		Content:     stripLines(l.body[open.next:max(contentEnd, open.next)], f.indent, true),
		Delim:       f.char,
		DelimLen:    f.length,
		Info:        f.info,
	})
	l.pos = end
}

// indentedBlock emits an IndentedCodeBlock starting at first. Interior
// blank lines belong to the block; trailing ones do not.
func (l *Lexer) indentedBlock(first line) {
	need := l.listIndent + 4
	end := first.end
	for pos := first.next; pos < len(l.body); {
		ln := l.lineAt(pos)
		if !ln.blank {
			if ln.indent < need {
				break
			}
			end = ln.end
		}
		pos = ln.next
	}

	l.emit(doctoken.Token{
		Kind:        doctoken.IndentedCodeBlock,
		StartOffset: first.start,
		EndOffset:   end,
		Content:     stripLines(l.body[first.start:end], need, false) + "\n",
	})
	l.pos = end
}

func (l *Lexer) blockTagAt(ln line) (int, bool) {
	if ln.indent > 3 || l.body[ln.text] != l.introducer {
		return 0, false
	}
	end := l.identEnd(ln.text + 1)
	return end, end > ln.text+1
}

// identEnd returns the end of the tag name starting at pos, or pos if
// there is none.
func (l *Lexer) identEnd(pos int) int {
	if pos >= len(l.body) || !isLetter(l.body[pos]) {
		return pos
	}
	pos++
	for pos < len(l.body) && isIdentPart(l.body[pos]) {
		pos++
	}
	return pos
}

func isATXHeading(text []byte) bool {
	run := runLength(text, 0, '#')
	if run < 1 || run > 6 {
		return false
	}
	return run == len(text) || isSpace(text[run])
}

func isSetextUnderline(text []byte) bool {
	if text[0] != '=' && text[0] != '-' {
		return false
	}
	run := runLength(text, 0, text[0])
	return len(bytes.TrimRight(text[run:], " \t")) == 0
}

func isThematicBreak(text []byte) bool {
	marker := text[0]
	if marker != '-' && marker != '*' && marker != '_' {
		return false
	}
	count := 0
	for _, char := range text {
		switch {
		case char == marker:
			count++
		case isSpace(char):
		default:
			return false
		}
	}
	return count >= 3
}

// listMarkerWidth returns the columns from the start of text to the item
// content for a bullet or ordered list marker.
func listMarkerWidth(text []byte) (int, bool) {
	pos := 0
	switch {
	case text[0] == '-' || text[0] == '+' || text[0] == '*':
		pos = 1
	case isDigit(text[0]):
		for pos < len(text) && pos < 9 && isDigit(text[pos]) {
			pos++
		}
		if pos >= len(text) || (text[pos] != '.' && text[pos] != ')') {
			return 0, false
		}
		pos++
	default:
		return 0, false
	}

	if pos == len(text) {
		return pos + 1, true
	}
	if text[pos] != ' ' && text[pos] != '\t' {
		return 0, false
	}

	spaces := runLength(text, pos, ' ')
	if spaces >= 1 && spaces <= 4 && pos+spaces < len(text) {
		return pos + spaces, true
	}
	return pos + 1, true
}

// stripLines removes up to width columns of indentation from each line.
// A tab split by the cut is replaced by the spaces that remain of it.
func stripLines(text []byte, width int, keepFinalNewline bool) string {
	if len(text) == 0 {
		return ""
	}

	var builder strings.Builder
	for rest := text; len(rest) > 0; {
		lineText, after, found := bytes.Cut(rest, []byte{'\n'})
		builder.WriteString(stripColumns(lineText, width))
		if found && (len(after) > 0 || keepFinalNewline) {
			builder.WriteByte('\n')
		}
		rest = after
	}
	return builder.String()
}

func stripColumns(text []byte, width int) string {
	col, pos := 0, 0
	for pos < len(text) && col < width && isSpace(text[pos]) {
		if text[pos] == '\t' {
			next := (col/markdownTabStop + 1) * markdownTabStop
			if next > width {
				return strings.Repeat(" ", next-width) + string(text[pos+1:])
			}
			col = next
		} else {
			col++
		}
		pos++
	}
	return string(text[pos:])
}

func runLength(text []byte, pos int, char byte) int {
	run := 0
	for pos+run < len(text) && text[pos+run] == char {
		run++
	}
	return run
}

func isSpace(char byte) bool {
	return char == ' ' || char == '\t'
}

func isDigit(char byte) bool {
	return char >= '0' && char <= '9'
}

func isLetter(char byte) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
}

func isIdentPart(char byte) bool {
	return isLetter(char) || isDigit(char) || char == '-' || char == '.' || char == '_'
}
