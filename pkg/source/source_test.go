package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/doclex/pkg/source"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []source.LineInfo
	}{
		{
			name:     "empty content",
			content:  "",
			expected: []source.LineInfo{},
		},
		{
			name:    "single line no newline",
			content: "hello",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 5},
			},
		},
		{
			name:    "single line with CRLF",
			content: "hello\r\n",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 7},
				{StartOffset: 7, NewlineStart: 7, EndOffset: 7},
			},
		},
		{
			name:    "multiple lines LF",
			content: "line1\nline2\nline3",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 6},
				{StartOffset: 6, NewlineStart: 11, EndOffset: 12},
				{StartOffset: 12, NewlineStart: 17, EndOffset: 17},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, source.BuildLines([]byte(testCase.content)))
		})
	}
}

func TestFile_LineAt(t *testing.T) {
	t.Parallel()

	file := source.NewFile("A.java", []byte("ab\ncd\n\nef"))

	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3},
		{3, 2, 1},
		{6, 3, 1},
		{7, 4, 1},
		{9, 4, 3},
		{-1, 0, 0},
	}

	for _, testCase := range tests {
		line, col := file.LineAt(testCase.offset)
		assert.Equal(t, testCase.wantLine, line, "line for offset %d", testCase.offset)
		assert.Equal(t, testCase.wantCol, col, "column for offset %d", testCase.offset)
	}

	assert.Equal(t, "2:2", file.PositionAt(4).String())
}

func TestFile_OffsetAndLineContent(t *testing.T) {
	t.Parallel()

	file := source.NewFile("", []byte("first\r\nsecond"))

	offset, ok := file.Offset(2, 3)
	assert.True(t, ok)
	assert.Equal(t, 9, offset)

	_, ok = file.Offset(3, 1)
	assert.False(t, ok)

	assert.Equal(t, "first", string(file.LineContent(1)))
	assert.Equal(t, "second", string(file.LineContent(2)))
	assert.Nil(t, file.LineContent(0))
	assert.Equal(t, 2, file.LineCount())
}

func TestSpan(t *testing.T) {
	t.Parallel()

	span := source.Span{Start: 2, End: 5}
	assert.Equal(t, 3, span.Len())
	assert.False(t, span.IsEmpty())
	assert.True(t, span.Contains(4))
	assert.False(t, span.Contains(5))
	assert.True(t, source.Span{Start: 1, End: 1}.IsEmpty())
}
