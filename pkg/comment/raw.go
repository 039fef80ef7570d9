// Package comment isolates documentation comments in source text, merges
// line-comment runs, and normalizes comment bodies by removing markers and
// incidental indentation while keeping a map back to source offsets.
package comment

// Style identifies the syntactic form of a documentation comment.
type Style uint8

const (
	// StyleBlock is a delimited /** ... */ comment.
	StyleBlock Style = iota

	// StyleLineRun is a run of consecutive /// line comments.
	StyleLineRun
)

func (s Style) String() string {
	switch s {
	case StyleBlock:
		return "block"
	case StyleLineRun:
		return "line-run"
	default:
		return "unknown"
	}
}

// RawComment is a documentation comment exactly as written in the source,
// markers included. It must not be modified once built.
type RawComment struct {
	Style Style

	// Text is the verbatim comment text from the first marker to the end of
	// the last fragment.
	Text string

	// StartOffset is the source offset of Text[0].
	StartOffset int

	// LineStarts holds the source offset of each physical line of Text.
	LineStarts []int

	// Delimited is set when Text still carries its comment markers. Text
	// without markers, such as an already normalized body, is left as is
	// apart from incidental whitespace.
	Delimited bool
}

// NewRawComment builds a RawComment from a source range.
func NewRawComment(src []byte, style Style, start, end int) RawComment {
	text := string(src[start:end])

	return RawComment{
		Style:       style,
		Text:        text,
		StartOffset: start,
		LineStarts:  lineStarts(text, start),
		Delimited:   true,
	}
}

// EndOffset returns the source offset just after the comment.
func (c RawComment) EndOffset() int {
	return c.StartOffset + len(c.Text)
}

// lineStarts returns the offset of each line of text, counting from start.
func lineStarts(text string, start int) []int {
	starts := []int{start}
	for idx := range len(text) {
		if text[idx] == '\n' {
			starts = append(starts, start+idx+1)
		}
	}
	return starts
}
