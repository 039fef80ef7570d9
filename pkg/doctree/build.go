package doctree

import (
	"iter"

	"github.com/yaklabco/doclex/pkg/doctoken"
)

// SummaryTag is the inline tag whose body overrides the first sentence.
const SummaryTag = "summary"

// builder assembles nodes from a token stream using a stack of open tags.
type builder struct {
	root  *Node
	stack []*Node
}

// Build assembles the token stream of body into a NodeDocComment tree.
// Inline tags left open at a block tag or at the end of the body become
// NodeErroneous.
func Build(body []byte, tokens iter.Seq[doctoken.Token]) *Node {
	bld := &builder{root: NewNode(NodeDocComment, 0, len(body))}
	for tok := range tokens {
		bld.add(tok)
	}
	bld.closeInline()

	splitFirstSentence(body, bld.root)
	return bld.root
}

func (b *builder) container() *Node {
	if len(b.stack) == 0 {
		return b.root
	}
	return b.stack[len(b.stack)-1]
}

func (b *builder) add(tok doctoken.Token) {
	switch tok.Kind {
	case doctoken.InlineTagStart:
		node := NewNode(NodeInlineTag, tok.StartOffset, tok.EndOffset)
		node.Name = tok.Name
		b.appendNode(node)
		b.stack = append(b.stack, node)

	case doctoken.InlineTagEnd:
		top := b.container()
		if top.Kind != NodeInlineTag {
			b.addMarkdown(tok)
			return
		}
		b.extend(tok.EndOffset)
		b.stack = b.stack[:len(b.stack)-1]

	case doctoken.BlockTagStart:
		b.closeInline()
		b.stack = b.stack[:0]
		node := NewNode(NodeBlockTag, tok.StartOffset, tok.EndOffset)
		node.Name = tok.Name
		b.appendNode(node)
		b.stack = append(b.stack, node)

	case doctoken.Text, doctoken.CodeSpan, doctoken.FencedCodeBlock, doctoken.IndentedCodeBlock:
		b.addMarkdown(tok)
	}
}

// addMarkdown merges tok into the trailing Markdown node of the current
// container, or starts a new one.
func (b *builder) addMarkdown(tok doctoken.Token) {
	parent := b.container()
	if last := parent.LastChild; last != nil && last.Kind == NodeMarkdown && last.EndOffset == tok.StartOffset {
		last.Tokens = append(last.Tokens, tok)
		last.EndOffset = tok.EndOffset
		b.extend(tok.EndOffset)
		return
	}

	node := NewNode(NodeMarkdown, tok.StartOffset, tok.EndOffset)
	node.Tokens = []doctoken.Token{tok}
	b.appendNode(node)
}

func (b *builder) appendNode(node *Node) {
	AppendChild(b.container(), node)
	b.extend(node.EndOffset)
}

// extend grows every open container to end.
func (b *builder) extend(end int) {
	for _, node := range b.stack {
		node.EndOffset = max(node.EndOffset, end)
	}
}

// closeInline marks the open inline tags as erroneous and pops them.
func (b *builder) closeInline() {
	for len(b.stack) > 0 {
		top := b.stack[len(b.stack)-1]
		if top.Kind != NodeInlineTag {
			return
		}
		top.Kind = NodeErroneous
		b.stack = b.stack[:len(b.stack)-1]
	}
}
