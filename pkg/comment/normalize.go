package comment

import "strings"

// DefaultTabStop is the column width used to measure tabs in indentation.
const DefaultTabStop = 8

// Normalized is the body of a documentation comment after marker stripping
// and incidental whitespace removal.
type Normalized struct {
	Style Style

	// Body is the normalized text. Lines are separated by a single '\n'.
	Body string

	// Map translates body offsets back to source offsets.
	Map *OffsetMap

	// LeadingBlank is set when the body begins with an empty line.
	LeadingBlank bool
}

// Normalizer removes comment markers and incidental indentation.
// The zero value uses DefaultTabStop.
type Normalizer struct {
	TabStop int
}

// Normalize normalizes raw using DefaultTabStop.
func Normalize(raw RawComment) *Normalized {
	return Normalizer{}.Normalize(raw)
}

// bodyLine is one physical line being normalized, tracked together with
// the source offset of its first remaining byte.
type bodyLine struct {
	text    string
	src     int
	newline int // source offset of the terminating '\n', -1 on the last line
}

func (l *bodyLine) cut(n int) {
	l.text = l.text[n:]
	l.src += n
}

// NormalizeText normalizes text that has no comment markers using
// DefaultTabStop.
func NormalizeText(text string) *Normalized {
	return Normalizer{}.NormalizeText(text)
}

// NormalizeText removes incidental whitespace from text that has no comment
// markers. Normalizing a body this way again returns it unchanged.
func (n Normalizer) NormalizeText(text string) *Normalized {
	return n.Normalize(RawComment{Style: StyleBlock, Text: text, LineStarts: lineStarts(text, 0)})
}

// Normalize strips markers and incidental whitespace from raw.
func (n Normalizer) Normalize(raw RawComment) *Normalized {
	tabStop := n.TabStop
	if tabStop <= 0 {
		tabStop = DefaultTabStop
	}

	lines := splitLines(raw)
	if raw.Delimited {
		switch raw.Style {
		case StyleLineRun:
			stripLineMarkers(lines)
		case StyleBlock:
			lines = stripBlockMarkers(lines)
		}
	}
	removeIncidental(lines, tabStop)

	var (
		body    strings.Builder
		offsets = &OffsetMap{start: raw.StartOffset, end: raw.EndOffset()}
	)
	for idx, line := range lines {
		if line.text != "" {
			offsets.add(body.Len(), line.src, len(line.text))
			body.WriteString(line.text)
		}
		if idx < len(lines)-1 {
			offsets.add(body.Len(), line.newline, 1)
			body.WriteByte('\n')
		}
	}
	offsets.bodyLen = body.Len()

	return &Normalized{
		Style:        raw.Style,
		Body:         body.String(),
		Map:          offsets,
		LeadingBlank: len(lines) > 1 && lines[0].text == "",
	}
}

func splitLines(raw RawComment) []bodyLine {
	var lines []bodyLine

	text := raw.Text
	start := 0
	for {
		idx := strings.IndexByte(text[start:], '\n')
		if idx < 0 {
			lines = append(lines, bodyLine{
				text:    text[start:],
				src:     raw.StartOffset + start,
				newline: -1,
			})
			return lines
		}

		end := start + idx
		line := text[start:end]
		// Only the CR of a CRLF pair in the source is a line terminator.
		if raw.Delimited {
			line = strings.TrimSuffix(line, "\r")
		}
		lines = append(lines, bodyLine{
			text:    line,
			src:     raw.StartOffset + start,
			newline: raw.StartOffset + end,
		})
		start = end + 1
	}
}

func stripLineMarkers(lines []bodyLine) {
	for idx := range lines {
		line := &lines[idx]
		line.cut(leadingWhitespace(line.text))
		if strings.HasPrefix(line.text, "///") {
			line.cut(3)
		}
		if strings.HasPrefix(line.text, " ") {
			line.cut(1)
		}
	}
}

func stripBlockMarkers(lines []bodyLine) []bodyLine {
	first := &lines[0]
	if !strings.HasPrefix(first.text, "/*") {
		return lines
	}
	if strings.HasPrefix(first.text, "/**") {
		first.cut(3)
	} else {
		first.cut(2)
	}

	last := &lines[len(lines)-1]
	closed := strings.HasSuffix(last.text, "*/")
	if closed {
		last.text = last.text[:len(last.text)-2]
	}

	for idx := 1; idx < len(lines); idx++ {
		line := &lines[idx]
		pos := leadingWhitespace(line.text)
		if pos >= len(line.text) || line.text[pos] != '*' {
			continue
		}
		for pos < len(line.text) && line.text[pos] == '*' {
			pos++
		}
		if pos < len(line.text) && line.text[pos] == ' ' {
			pos++
		}
		line.cut(pos)
	}

	if len(lines) > 1 && isBlank(lines[0].text) {
		lines = lines[1:]
	}
	if closed && len(lines) > 1 && isBlank(lines[len(lines)-1].text) {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func removeIncidental(lines []bodyLine, tabStop int) {
	minIndent := -1
	for idx := range lines {
		line := &lines[idx]
		if isBlank(line.text) {
			line.cut(len(line.text))
			continue
		}
		width := indentWidth(line.text, tabStop)
		if minIndent < 0 || width < minIndent {
			minIndent = width
		}
	}

	for idx := range lines {
		line := &lines[idx]
		switch {
		case line.text == "":
		case idx == 0:
			line.cut(leadingWhitespace(line.text))
		default:
			line.cut(cutColumns(line.text, minIndent, tabStop))
		}
	}
}

func isWhitespace(char byte) bool {
	return char == ' ' || char == '\t' || char == '\f'
}

func leadingWhitespace(text string) int {
	pos := 0
	for pos < len(text) && isWhitespace(text[pos]) {
		pos++
	}
	return pos
}

func isBlank(text string) bool {
	return leadingWhitespace(text) == len(text)
}

func nextColumn(col, char, tabStop int) int {
	if char == '\t' {
		return (col/tabStop + 1) * tabStop
	}
	return col + 1
}

func indentWidth(text string, tabStop int) int {
	col := 0
	for pos := 0; pos < len(text) && isWhitespace(text[pos]); pos++ {
		col = nextColumn(col, int(text[pos]), tabStop)
	}
	return col
}

// cutColumns returns the byte length of the prefix of text spanning at most
// width columns of leading whitespace. A tab that would cross the boundary
// is not included.
func cutColumns(text string, width, tabStop int) int {
	col, pos := 0, 0
	for pos < len(text) && col < width && isWhitespace(text[pos]) {
		next := nextColumn(col, int(text[pos]), tabStop)
		if next > width {
			break
		}
		col = next
		pos++
	}
	return pos
}
