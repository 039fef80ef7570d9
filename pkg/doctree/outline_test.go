package doctree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/doclex/pkg/doctree"
)

func TestOutline(t *testing.T) {
	t.Parallel()

	body := "Summary.\n" +
		"\n" +
		"# Title\n" +
		"\n" +
		"See {@link X} now.\n" +
		"\n" +
		"- a\n" +
		"- b\n" +
		"\n" +
		"```java\n" +
		"int x;\n" +
		"```\n" +
		"\n" +
		"    System.out.println(1);\n" +
		"\n" +
		"---\n" +
		"@param p ignored"

	blocks := doctree.Outline([]byte(body), build(body))

	kinds := make([]doctree.BlockKind, 0, len(blocks))
	for _, block := range blocks {
		kinds = append(kinds, block.Kind)
	}
	require.Equal(t, []doctree.BlockKind{
		doctree.BlockParagraph,
		doctree.BlockHeading,
		doctree.BlockParagraph,
		doctree.BlockList,
		doctree.BlockParagraph,
		doctree.BlockParagraph,
		doctree.BlockCodeBlock,
		doctree.BlockCodeBlock,
		doctree.BlockThematicBreak,
	}, kinds)

	assert.Equal(t, "Summary.", blocks[0].Text)
	assert.Equal(t, 1, blocks[1].Level)
	assert.Equal(t, "Title", blocks[1].Text)
	assert.Equal(t, "See "+doctree.ObjectReplacement+" now.", blocks[2].Text)
	assert.Equal(t, 2, blocks[3].Items)
	assert.Equal(t, 1, blocks[3].Level)
	assert.False(t, blocks[3].Ordered)
	assert.Equal(t, "a", blocks[4].Text)
	assert.Equal(t, "java", blocks[6].Language)
	assert.Equal(t, "int x;\n", blocks[6].Text)
	assert.Equal(t, "java", blocks[7].Language)
}

func TestOutline_DetectsLanguage(t *testing.T) {
	t.Parallel()

	body := "Example:\n\n```\nSELECT * FROM users;\n```"
	blocks := doctree.Outline([]byte(body), build(body))

	require.Len(t, blocks, 2)
	assert.Equal(t, "sql", blocks[1].Language)
}

func TestOutline_NestedList(t *testing.T) {
	t.Parallel()

	body := "1. one\n   - inner\n2. two"
	blocks := doctree.Outline([]byte(body), build(body))

	var lists []doctree.Block
	for _, block := range blocks {
		if block.Kind == doctree.BlockList {
			lists = append(lists, block)
		}
	}
	require.Len(t, lists, 2)
	assert.True(t, lists[0].Ordered)
	assert.Equal(t, 2, lists[0].Items)
	assert.Equal(t, 2, lists[1].Level)
}

func TestOutline_Empty(t *testing.T) {
	t.Parallel()

	body := "@return nothing"
	assert.Empty(t, doctree.Outline([]byte(body), build(body)))
	assert.Equal(t, "thematic-break", doctree.BlockThematicBreak.String())
}
