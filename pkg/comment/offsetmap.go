package comment

import "sort"

// OffsetMap translates byte offsets in a normalized body to byte offsets in
// the original source. It is a monotonic table of contiguous segments.
type OffsetMap struct {
	segments []segment
	bodyLen  int
	start    int
	end      int
}

type segment struct {
	body   int
	source int
	length int
}

func (m *OffsetMap) add(body, source, length int) {
	m.segments = append(m.segments, segment{body: body, source: source, length: length})
}

// SourceOffset returns the source offset of the body byte at bodyOffset.
// An offset at or past the end of the body maps to the end of the comment.
func (m *OffsetMap) SourceOffset(bodyOffset int) int {
	if bodyOffset >= m.bodyLen || len(m.segments) == 0 {
		return m.end
	}
	if bodyOffset < 0 {
		return m.start
	}

	idx := sort.Search(len(m.segments), func(i int) bool {
		return m.segments[i].body > bodyOffset
	}) - 1

	seg := m.segments[idx]
	return seg.source + bodyOffset - seg.body
}

// BodyLen returns the length of the body the map was built for.
func (m *OffsetMap) BodyLen() int {
	return m.bodyLen
}

// CommentStart returns the source offset of the comment's first marker.
func (m *OffsetMap) CommentStart() int {
	return m.start
}
