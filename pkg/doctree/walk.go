package doctree

import "errors"

// WalkFunc is called for each node visited by Walk.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// ErrSkipChildren may be returned by a WalkFunc to skip the node's children.
var ErrSkipChildren = errors.New("skip children")

// Walk performs a pre-order traversal starting at root.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		if errors.Is(err, ErrSkipChildren) {
			return nil
		}
		return err
	}

	for child := root.FirstChild; child != nil; child = child.Next {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// FindByKind returns all nodes of the given kind in pre-order.
func FindByKind(root *Node, kind NodeKind) []*Node {
	var found []*Node

	//nolint:errcheck // the callback never fails
	Walk(root, func(n *Node) error {
		if n.Kind == kind {
			found = append(found, n)
		}
		return nil
	})

	return found
}

// Tags returns the names of all tags in the tree in pre-order.
func Tags(root *Node) []string {
	var names []string

	//nolint:errcheck // the callback never fails
	Walk(root, func(n *Node) error {
		if n.IsTag() {
			names = append(names, n.Name)
		}
		return nil
	})

	return names
}
