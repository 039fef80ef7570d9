package doctree

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/doclex/pkg/langdetect"
)

// ObjectReplacement stands in for an inline tag when the description is
// handed to the Markdown parser.
const ObjectReplacement = "\uFFFC"

// BlockKind classifies an outline block.
type BlockKind uint8

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockList
	BlockCodeBlock
	BlockThematicBreak
	BlockQuote
	BlockHTML
)

var blockKindNames = [...]string{
	BlockParagraph:     "paragraph",
	BlockHeading:       "heading",
	BlockList:          "list",
	BlockCodeBlock:     "code",
	BlockThematicBreak: "thematic-break",
	BlockQuote:         "quote",
	BlockHTML:          "html",
}

func (k BlockKind) String() string {
	if int(k) < len(blockKindNames) {
		return blockKindNames[k]
	}
	return fmt.Sprintf("BlockKind(%d)", k)
}

// Block is one block-level element of a description.
type Block struct {
	Kind BlockKind

	// Level is the heading level, or the nesting depth of a list.
	Level int

	// Text is the block source with inline tags replaced by ObjectReplacement.
	Text string

	// Language is set on code blocks, from the info string or detected.
	Language string

	// Ordered and Items describe lists.
	Ordered bool
	Items   int
}

var commonMark = goldmark.New()

// Outline parses the description of a comment tree as CommonMark and
// flattens it into a list of blocks in document order.
func Outline(body []byte, root *Node) []Block {
	src := renderDescription(body, root)
	if len(bytes.TrimSpace(src)) == 0 {
		return nil
	}

	doc := commonMark.Parser().Parse(text.NewReader(src))

	var blocks []Block

	//nolint:errcheck // the walker never fails
	ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := node.(type) {
		case *ast.Document, *ast.ListItem:
			return ast.WalkContinue, nil
		case *ast.Heading:
			blocks = append(blocks, Block{Kind: BlockHeading, Level: node.Level, Text: blockText(node, src)})
		case *ast.Paragraph, *ast.TextBlock:
			blocks = append(blocks, Block{Kind: BlockParagraph, Text: blockText(node, src)})
		case *ast.List:
			blocks = append(blocks, Block{
				Kind:    BlockList,
				Level:   listDepth(node),
				Ordered: node.IsOrdered(),
				Items:   node.ChildCount(),
			})
			return ast.WalkContinue, nil
		case *ast.Blockquote:
			blocks = append(blocks, Block{Kind: BlockQuote})
			return ast.WalkContinue, nil
		case *ast.FencedCodeBlock:
			code := linesText(node, src)
			lang := langdetect.FromInfo(string(node.Language(src)))
			if lang == "" {
				lang = langdetect.Detect([]byte(code))
			}
			blocks = append(blocks, Block{Kind: BlockCodeBlock, Text: code, Language: lang})
		case *ast.CodeBlock:
			code := linesText(node, src)
			blocks = append(blocks, Block{Kind: BlockCodeBlock, Text: code, Language: langdetect.Detect([]byte(code))})
		case *ast.ThematicBreak:
			blocks = append(blocks, Block{Kind: BlockThematicBreak})
		case *ast.HTMLBlock:
			blocks = append(blocks, Block{Kind: BlockHTML, Text: blockText(node, src)})
		}
		return ast.WalkSkipChildren, nil
	})

	return blocks
}

// renderDescription returns the description source with each top-level
// tag replaced by ObjectReplacement.
func renderDescription(body []byte, root *Node) []byte {
	end := len(body)
	if tags := root.BlockTags(); len(tags) > 0 {
		end = tags[0].StartOffset
	}

	var buf bytes.Buffer
	pos := 0
	for _, node := range root.Description() {
		if !node.IsTag() {
			continue
		}
		buf.Write(body[pos:node.StartOffset])
		buf.WriteString(ObjectReplacement)
		pos = node.EndOffset
	}
	if pos < end {
		buf.Write(body[pos:end])
	}
	return buf.Bytes()
}

func linesText(node ast.Node, src []byte) string {
	var builder strings.Builder
	lines := node.Lines()
	for idx := range lines.Len() {
		seg := lines.At(idx)
		builder.Write(seg.Value(src))
	}
	return builder.String()
}

func blockText(node ast.Node, src []byte) string {
	return strings.TrimSpace(linesText(node, src))
}

func listDepth(node ast.Node) int {
	depth := 0
	for parent := node; parent != nil; parent = parent.Parent() {
		if _, ok := parent.(*ast.List); ok {
			depth++
		}
	}
	return depth
}
