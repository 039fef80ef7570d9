package doctree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/doclex/pkg/doctree"
	"github.com/yaklabco/doclex/pkg/lexer"
)

func build(body string) *doctree.Node {
	return doctree.Build([]byte(body), lexer.New([]byte(body)).All())
}

func texts(body string, nodes []*doctree.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, string(node.Text([]byte(body))))
	}
	return out
}

func TestBuild_Groups(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		body          string
		firstSentence []string
		body2         []string
		blockTags     []string
	}{
		{
			name:          "sentence and tags",
			body:          "First sentence. Second sentence.\n@param x the x\n@return y",
			firstSentence: []string{"First sentence."},
			body2:         []string{"Second sentence.\n"},
			blockTags:     []string{"@param x the x\n", "@return y"},
		},
		{
			name:          "no period",
			body:          "Only a fragment",
			firstSentence: []string{"Only a fragment"},
			body2:         []string{},
			blockTags:     []string{},
		},
		{
			name:          "blank line ends sentence",
			body:          "Summary without period\n\nBody here.",
			firstSentence: []string{"Summary without period\n"},
			body2:         []string{"Body here."},
			blockTags:     []string{},
		},
		{
			name:          "period in code span",
			body:          "Use `a. b` here. Then more.",
			firstSentence: []string{"Use `a. b` here."},
			body2:         []string{"Then more."},
			blockTags:     []string{},
		},
		{
			name:          "code block ends sentence",
			body:          "Example\n```\ncode.\n```",
			firstSentence: []string{"Example\n"},
			body2:         []string{"```\ncode.\n```"},
			blockTags:     []string{},
		},
		{
			name:          "inline tag in sentence",
			body:          "Returns {@code true}. Otherwise false.",
			firstSentence: []string{"Returns ", "{@code true}", "."},
			body2:         []string{"Otherwise false."},
			blockTags:     []string{},
		},
		{
			name:          "summary tag",
			body:          "{@summary Short.} More text.",
			firstSentence: []string{"{@summary Short.}"},
			body2:         []string{"More text."},
			blockTags:     []string{},
		},
		{
			name:          "tags only",
			body:          "@deprecated use other",
			firstSentence: []string{},
			body2:         []string{},
			blockTags:     []string{"@deprecated use other"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			root := build(testCase.body)
			require.Equal(t, doctree.NodeDocComment, root.Kind)
			assert.Equal(t, testCase.firstSentence, texts(testCase.body, root.FirstSentence()))
			assert.Equal(t, testCase.body2, texts(testCase.body, root.Body()))
			assert.Equal(t, testCase.blockTags, texts(testCase.body, root.BlockTags()))
		})
	}
}

func TestBuild_InlineTagChildren(t *testing.T) {
	t.Parallel()

	body := "{@link A {@code b}} c."
	root := build(body)

	assert.Equal(t, []string{"link", "code"}, doctree.Tags(root))

	link := root.FirstChild
	require.Equal(t, doctree.NodeInlineTag, link.Kind)
	assert.Equal(t, "{@link A {@code b}}", string(link.Text([]byte(body))))

	children := link.Children()
	require.Len(t, children, 2)
	assert.Equal(t, doctree.NodeMarkdown, children[0].Kind)
	assert.Equal(t, " A ", string(children[0].Text([]byte(body))))
	assert.Equal(t, doctree.NodeInlineTag, children[1].Kind)
	assert.Equal(t, "code", children[1].Name)
}

func TestBuild_Erroneous(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"closed by block tag", "See {@link Foo\n@param x", "{@link Foo\n"},
		{"closed by end of body", "See {@code x", "{@code x"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			root := build(testCase.body)
			bad := doctree.FindByKind(root, doctree.NodeErroneous)
			require.Len(t, bad, 1)
			assert.Equal(t, testCase.want, string(bad[0].Text([]byte(testCase.body))))
			assert.Empty(t, doctree.FindByKind(root, doctree.NodeInlineTag))
		})
	}
}

func TestBuild_MarkdownMergesCode(t *testing.T) {
	t.Parallel()

	body := "a `b` c\n```\nx\n```\n"
	root := build(body)

	nodes := doctree.FindByKind(root, doctree.NodeMarkdown)
	var tokenCount int
	for _, node := range nodes {
		tokenCount += len(node.Tokens)
	}
	assert.Equal(t, len(lexer.Tokenize([]byte(body))), tokenCount)
}

func TestBuild_Empty(t *testing.T) {
	t.Parallel()

	root := build("")
	assert.Nil(t, root.FirstChild)
	assert.Empty(t, root.FirstSentence())
}

func TestWalk_SkipChildren(t *testing.T) {
	t.Parallel()

	root := build("{@link A {@code b}} c.\n@param x {@code y}")

	var visited []doctree.NodeKind
	err := doctree.Walk(root, func(n *doctree.Node) error {
		visited = append(visited, n.Kind)
		if n.Kind == doctree.NodeInlineTag {
			return doctree.ErrSkipChildren
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []doctree.NodeKind{
		doctree.NodeDocComment,
		doctree.NodeInlineTag,
		doctree.NodeMarkdown,
		doctree.NodeBlockTag,
		doctree.NodeMarkdown,
		doctree.NodeInlineTag,
	}, visited)
}

func TestNodeKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Erroneous", doctree.NodeErroneous.String())
	assert.Equal(t, "NodeKind(99)", doctree.NodeKind(99).String())
}
