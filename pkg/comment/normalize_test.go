package comment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/doclex/pkg/comment"
)

func normalizeOne(t *testing.T, src string) *comment.Normalized {
	t.Helper()

	raws, errs := comment.Extract([]byte(src), comment.DialectJava)
	require.Empty(t, errs)
	require.Len(t, raws, 1)

	return comment.Normalize(raws[0])
}

func TestNormalize_LineRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "simple",
			src:  "///abc\n///def\n///ghi",
			want: "abc\ndef\nghi",
		},
		{
			name: "one space after marker",
			src:  "/// abc\n/// def",
			want: "abc\ndef",
		},
		{
			name: "indented in class",
			src:  "class C {\n    /// abc\n    /// def\n    void m() {}\n}",
			want: "abc\ndef",
		},
		{
			name: "mixed incidental",
			src:  "    ///        abc\n    ///            def\n    ///          ghi\n",
			want: "abc\n    def\n  ghi",
		},
		{
			name: "first line less indented keeps others",
			src:  "/// abc\n///     def",
			want: "abc\n    def",
		},
		{
			name: "tab after incidental",
			src:  "///  abc\n///  \tdef\n///  ghi",
			want: "abc\n\tdef\nghi",
		},
		{
			name: "mixed tabs",
			src:  "///\tabc\n///\t\tdef\n///\tghi",
			want: "abc\n\tdef\nghi",
		},
		{
			name: "tabs and spaces measured in columns",
			src:  "///         abc\n///\t    def",
			want: "abc\n    def",
		},
		{
			name: "leading blank line",
			src:  "///\n///    abc",
			want: "\nabc",
		},
		{
			name: "trailing blank line",
			src:  "/// abc\n///",
			want: "abc\n",
		},
		{
			name: "trailing whitespace kept",
			src:  "/// abc  \n/// def\t",
			want: "abc  \ndef\t",
		},
		{
			name: "whitespace-only line emptied",
			src:  "/// abc\n///     \n/// def",
			want: "abc\n\ndef",
		},
		{
			name: "crlf",
			src:  "/// abc\r\n/// def\r\n",
			want: "abc\ndef",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := normalizeOne(t, testCase.src)
			assert.Equal(t, comment.StyleLineRun, got.Style)
			assert.Equal(t, testCase.want, got.Body)
		})
	}
}

func TestNormalize_Block(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "single line",
			src:  "/** Summary. */",
			want: "Summary. ",
		},
		{
			name: "javadoc style",
			src:  "/**\n * Summary.\n *\n *   code\n */",
			want: "Summary.\n\n  code",
		},
		{
			name: "indented javadoc",
			src:  "    /**\n     * First.\n     * Second.\n     */",
			want: "First.\nSecond.",
		},
		{
			name: "text on opening line",
			src:  "/** First.\n * Second.\n */",
			want: "First.\nSecond.",
		},
		{
			name: "no star markers",
			src:  "/**\n    abc\n      def\n*/",
			want: "abc\n  def",
		},
		{
			name: "double star marker",
			src:  "/**\n ** abc\n ** def\n **/",
			want: "abc\ndef",
		},
		{
			name: "empty",
			src:  "/** */",
			want: "",
		},
		{
			name: "leading blank line",
			src:  "/**\n *\n * abc\n */",
			want: "\nabc",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := normalizeOne(t, testCase.src)
			assert.Equal(t, comment.StyleBlock, got.Style)
			assert.Equal(t, testCase.want, got.Body)
		})
	}
}

func TestNormalize_LeadingBlank(t *testing.T) {
	t.Parallel()

	assert.True(t, normalizeOne(t, "///\n/// abc").LeadingBlank)
	assert.False(t, normalizeOne(t, "/// abc\n///").LeadingBlank)
	assert.False(t, normalizeOne(t, "/** */").LeadingBlank)
}

func TestNormalizer_TabStop(t *testing.T) {
	t.Parallel()

	raws, _ := comment.Extract([]byte("///     abc\n///\tdef"), comment.DialectJava)
	require.Len(t, raws, 1)

	// With a tab stop of 4 the tab and the four spaces are the same width.
	got := comment.Normalizer{TabStop: 4}.Normalize(raws[0])
	assert.Equal(t, "abc\ndef", got.Body)

	got = comment.Normalizer{}.Normalize(raws[0])
	assert.Equal(t, "abc\n\tdef", got.Body)
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	sources := []string{
		"    ///        abc\n    ///            def\n    ///          ghi",
		"///\n///    abc\n///      def",
		"/**\n * Summary.\n *\n *     code\n *   more\n */",
		"///  abc\n///  \tdef\n///  ghi",
		"/** a\n *\t\tb\n *   c */",
		"/// /* legacy */ note\n///   detail",
		"/// a\r\r\n/// b",
		"/**\n *   x\n *     y\n */",
		"///\n/// * item\n///   */",
	}

	for _, src := range sources {
		first := normalizeOne(t, src)
		again := comment.NormalizeText(first.Body)
		assert.Equal(t, first.Body, again.Body, "source %q", src)
	}
}

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "block markers kept", text: "/* legacy */ note\n  detail", want: "/* legacy */ note\n  detail"},
		{name: "star lines kept", text: "a\n * b\n */", want: "a\n * b\n */"},
		{name: "incidental removed", text: "  a\n    b\n   c", want: "a\n  b\n c"},
		{name: "lone cr kept", text: "a\r\nb\r", want: "a\r\nb\r"},
		{name: "blank edges kept", text: "\nabc\n", want: "\nabc\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := comment.NormalizeText(testCase.text)
			assert.Equal(t, testCase.want, got.Body)
		})
	}
}

func TestNormalize_CarriageReturns(t *testing.T) {
	t.Parallel()

	// The CR of a CRLF pair ends the line; any other CR is content.
	assert.Equal(t, "a\r\nb", normalizeOne(t, "/// a\r\r\n/// b").Body)
	assert.Equal(t, "a\nb ", normalizeOne(t, "/** a\r\n * b */").Body)
}

func TestNormalize_TabsMeasuredInColumns(t *testing.T) {
	t.Parallel()

	// Tabs advance to the next multiple of the tab stop, so a tab is wider
	// than one space and straddling tabs survive the cut.
	src := "///        abc\n///\t       def\n///\t\t      ghi"
	assert.Equal(t, "abc\n\t       def\n\t\t      ghi", normalizeOne(t, src).Body)

	raws, _ := comment.Extract([]byte(src), comment.DialectJava)
	require.Len(t, raws, 1)
	got := comment.Normalizer{TabStop: 1}.Normalize(raws[0])
	assert.Equal(t, "abc\n def\n ghi", got.Body)
}

func TestOffsetMap(t *testing.T) {
	t.Parallel()

	src := "x\n  /// ab\n  /// cd\n"
	got := normalizeOne(t, src)
	require.Equal(t, "ab\ncd", got.Body)

	offsets := got.Map
	assert.Equal(t, 8, offsets.SourceOffset(0))
	assert.Equal(t, 9, offsets.SourceOffset(1))
	assert.Equal(t, 10, offsets.SourceOffset(2))
	assert.Equal(t, 17, offsets.SourceOffset(3))
	assert.Equal(t, 19, offsets.SourceOffset(5))
	assert.Equal(t, 19, offsets.SourceOffset(100))
	assert.Equal(t, 4, offsets.SourceOffset(-1))
	assert.Equal(t, 4, offsets.CommentStart())
	assert.Equal(t, 5, offsets.BodyLen())

	for idx := range len(got.Body) {
		assert.Equal(t, got.Body[idx], src[offsets.SourceOffset(idx)], "body offset %d", idx)
	}
}

func TestOffsetMap_Block(t *testing.T) {
	t.Parallel()

	src := "/**\n * one\n *\n *   two\n */"
	got := normalizeOne(t, src)
	require.Equal(t, "one\n\n  two", got.Body)

	prev := -1
	for idx := range len(got.Body) {
		offset := got.Map.SourceOffset(idx)
		assert.Greater(t, offset, prev)
		assert.Equal(t, got.Body[idx], src[offset])
		prev = offset
	}
	assert.Equal(t, len(src), got.Map.SourceOffset(len(got.Body)))
}

func FuzzNormalize(f *testing.F) {
	f.Add("/// abc\n///   def\n")
	f.Add("/**\n * Summary.\n *\n *\tcode\n */")
	f.Add("  ///\tx\r\n  ///  y")
	f.Add("/** a */ /// b\n/// c")

	f.Fuzz(func(t *testing.T, input string) {
		raws, _ := comment.Extract([]byte(input), comment.DialectJava)

		for _, raw := range raws {
			got := comment.Normalize(raw)

			prev := -1
			for idx := range len(got.Body) {
				offset := got.Map.SourceOffset(idx)
				if offset <= prev || offset >= len(input) || input[offset] != got.Body[idx] {
					t.Fatalf("body offset %d maps to %d in %q", idx, offset, input)
				}
				prev = offset
			}

			again := comment.NormalizeText(got.Body)
			if again.Body != got.Body {
				t.Fatalf("not idempotent: %q then %q", got.Body, again.Body)
			}
		}
	})
}
