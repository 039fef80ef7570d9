// Package doctree assembles the token stream of a documentation comment
// into a tree of description text, inline tags and block tags.
package doctree

import (
	"fmt"

	"github.com/yaklabco/doclex/pkg/doctoken"
)

// NodeKind classifies a node in a comment tree.
type NodeKind uint8

const (
	// NodeDocComment is the root of a comment tree.
	NodeDocComment NodeKind = iota

	// NodeMarkdown is a run of adjacent text, code span and code block tokens.
	NodeMarkdown

	// NodeInlineTag is a {@name ...} tag with its body as children.
	NodeInlineTag

	// NodeBlockTag is an @name tag with its body as children.
	NodeBlockTag

	// NodeErroneous is an inline tag that was never closed.
	NodeErroneous
)

var nodeKindNames = [...]string{
	NodeDocComment: "DocComment",
	NodeMarkdown:   "Markdown",
	NodeInlineTag:  "InlineTag",
	NodeBlockTag:   "BlockTag",
	NodeErroneous:  "Erroneous",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", k)
}

// Group places a description node in the first sentence or the body.
type Group uint8

const (
	GroupNone Group = iota
	GroupFirstSentence
	GroupBody
)

func (g Group) String() string {
	switch g {
	case GroupFirstSentence:
		return "first-sentence"
	case GroupBody:
		return "body"
	default:
		return ""
	}
}

// Node is one element of a comment tree.
type Node struct {
	Kind NodeKind

	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// StartOffset and EndOffset delimit the node in the normalized body.
	StartOffset int
	EndOffset   int

	// Name is the tag name for tag nodes.
	Name string

	// Tokens are the tokens merged into a NodeMarkdown.
	Tokens []doctoken.Token

	// Group is set on the description children of the root.
	Group Group
}

// NewNode creates a detached node covering [start, end).
func NewNode(kind NodeKind, start, end int) *Node {
	return &Node{Kind: kind, StartOffset: start, EndOffset: end}
}

// Text returns the body bytes covered by the node.
func (n *Node) Text(body []byte) []byte {
	if n.StartOffset < 0 || n.EndOffset > len(body) || n.StartOffset > n.EndOffset {
		return nil
	}
	return body[n.StartOffset:n.EndOffset]
}

// IsTag reports whether the node is an inline, block or erroneous tag.
func (n *Node) IsTag() bool {
	return n.Kind == NodeInlineTag || n.Kind == NodeBlockTag || n.Kind == NodeErroneous
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// FirstSentence returns the description nodes of the first sentence.
func (n *Node) FirstSentence() []*Node {
	return n.group(GroupFirstSentence)
}

// Body returns the description nodes after the first sentence.
func (n *Node) Body() []*Node {
	return n.group(GroupBody)
}

// Description returns every description node, first sentence included.
func (n *Node) Description() []*Node {
	var nodes []*Node
	for child := n.FirstChild; child != nil && child.Kind != NodeBlockTag; child = child.Next {
		nodes = append(nodes, child)
	}
	return nodes
}

// BlockTags returns the block tag children of a comment root.
func (n *Node) BlockTags() []*Node {
	var tags []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		if child.Kind == NodeBlockTag {
			tags = append(tags, child)
		}
	}
	return tags
}

func (n *Node) group(group Group) []*Node {
	var nodes []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		if child.Group == group {
			nodes = append(nodes, child)
		}
	}
	return nodes
}

// AppendChild appends child to parent, detaching it from any previous parent.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child
}

// InsertAfter inserts node after sibling. sibling must have a parent.
func InsertAfter(sibling, node *Node) {
	if sibling == nil || node == nil || sibling.Parent == nil {
		return
	}
	if node.Parent != nil {
		RemoveChild(node.Parent, node)
	}

	parent := sibling.Parent
	node.Parent = parent
	node.Prev = sibling
	node.Next = sibling.Next

	if sibling.Next != nil {
		sibling.Next.Prev = node
	} else {
		parent.LastChild = node
	}
	sibling.Next = node
}

// RemoveChild removes child from parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}
	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}
