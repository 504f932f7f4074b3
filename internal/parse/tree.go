package parse

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"parsecheck/internal/source"
)

// ParsedTree is one syntax tree produced by a session, together with the
// artifact name and the source bytes the tree's byte offsets point into.
type ParsedTree struct {
	Name     string
	Language string
	Source   []byte

	tree *sitter.Tree
}

// Root returns the tree's root node, or nil once the tree has been released.
func (t *ParsedTree) Root() *sitter.Node {
	if t.tree == nil {
		return nil
	}
	return t.tree.RootNode()
}

// Close releases the tree's native memory. Idempotent.
func (t *ParsedTree) Close() {
	if t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}

// position resolves a node of this tree to a 1-based source position.
func (t *ParsedTree) position(node *sitter.Node) source.Position {
	p := node.StartPosition()
	return source.Position{
		File:   t.Name,
		Line:   int(p.Row) + 1,
		Column: int(p.Column) + 1,
	}
}

// text returns the source text covered by node.
func (t *ParsedTree) text(node *sitter.Node) string {
	return string(t.Source[node.StartByte():node.EndByte()])
}
