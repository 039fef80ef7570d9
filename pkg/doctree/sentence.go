package doctree

import "github.com/yaklabco/doclex/pkg/doctoken"

// splitFirstSentence assigns the description children of root to the
// first sentence or the body.
//
// A {@summary} tag in the description is the first sentence. Otherwise the
// sentence ends after a '.' followed by whitespace outside code, at a blank
// line, or before a code block that follows some text.
func splitFirstSentence(body []byte, root *Node) {
	desc := root.Description()

	for _, node := range desc {
		if node.Kind == NodeInlineTag && node.Name == SummaryTag {
			for _, other := range desc {
				other.Group = GroupBody
			}
			node.Group = GroupFirstSentence
			trimBody(body, root)
			return
		}
	}

	group := GroupFirstSentence
	hasContent := false
	for _, node := range desc {
		if group == GroupBody {
			node.Group = GroupBody
			continue
		}
		node.Group = GroupFirstSentence

		if node.Kind != NodeMarkdown {
			hasContent = true
			continue
		}

		end, found := sentenceEnd(body, node, &hasContent)
		if !found {
			continue
		}

		group = GroupBody
		switch end {
		case node.StartOffset:
			node.Group = GroupBody
		case node.EndOffset:
		default:
			rest := splitMarkdown(node, end)
			rest.Group = GroupBody
			InsertAfter(node, rest)
		}
	}

	trimBody(body, root)
}

// sentenceEnd returns the body offset where the first sentence ends within
// node, if it ends there.
func sentenceEnd(body []byte, node *Node, hasContent *bool) (int, bool) {
	for _, tok := range node.Tokens {
		switch tok.Kind {
		case doctoken.Text:
			if *hasContent && isBlankLine(body, tok) {
				return tok.StartOffset, true
			}
			for pos := tok.StartOffset; pos < tok.EndOffset; pos++ {
				char := body[pos]
				if !isSpace(char) {
					*hasContent = true
				}
				if char == '.' && (pos+1 == len(body) || isSpace(body[pos+1])) {
					return pos + 1, true
				}
			}
		case doctoken.FencedCodeBlock, doctoken.IndentedCodeBlock:
			if *hasContent {
				return tok.StartOffset, true
			}
			*hasContent = true
		default:
			*hasContent = true
		}
	}
	return 0, false
}

// isBlankLine reports whether tok is a whole whitespace-only line.
func isBlankLine(body []byte, tok doctoken.Token) bool {
	if tok.StartOffset > 0 && body[tok.StartOffset-1] != '\n' {
		return false
	}
	for _, char := range tok.Text(body) {
		if !isSpace(char) {
			return false
		}
	}
	return tok.EndOffset > tok.StartOffset && body[tok.EndOffset-1] == '\n'
}

// splitMarkdown cuts node at offset, keeping [start, offset) in node and
// returning a detached node for [offset, end).
func splitMarkdown(node *Node, offset int) *Node {
	rest := NewNode(NodeMarkdown, offset, node.EndOffset)

	var head []doctoken.Token
	for _, tok := range node.Tokens {
		switch {
		case tok.EndOffset <= offset:
			head = append(head, tok)
		case tok.StartOffset >= offset:
			rest.Tokens = append(rest.Tokens, tok)
		default:
			left, right := tok, tok
			left.EndOffset = offset
			right.StartOffset = offset
			head = append(head, left)
			rest.Tokens = append(rest.Tokens, right)
		}
	}

	node.Tokens = head
	node.EndOffset = offset
	return rest
}

// trimBody drops leading whitespace from the first body node so body text
// starts at its first visible character.
func trimBody(body []byte, root *Node) {
	for node := root.FirstChild; node != nil; {
		next := node.Next
		if node.Group != GroupBody {
			node = next
			continue
		}
		if node.Kind != NodeMarkdown {
			return
		}

		for len(node.Tokens) > 0 && node.Tokens[0].Kind == doctoken.Text {
			tok := &node.Tokens[0]
			for tok.StartOffset < tok.EndOffset && isSpace(body[tok.StartOffset]) {
				tok.StartOffset++
			}
			if tok.StartOffset < tok.EndOffset {
				break
			}
			node.Tokens = node.Tokens[1:]
		}

		if len(node.Tokens) > 0 {
			node.StartOffset = node.Tokens[0].StartOffset
			return
		}
		RemoveChild(root, node)
		node = next
	}
}

func isSpace(char byte) bool {
	return char == ' ' || char == '\t' || char == '\n' || char == '\f'
}
