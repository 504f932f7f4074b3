package parse

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"parsecheck/internal/diag"
)

// The parser's diagnostic stream and the shape of its emitted trees are
// produced independently and do not always agree: a malformed span can be
// reported as a diagnostic without an erroneous node, or marked in the tree
// without a matching ERROR diagnostic. Both signals are therefore checked and
// either alone rejects the parse.
func foundParseErrors(diagnostics []diag.Diagnostic, trees []*ParsedTree) bool {
	if severityContainsError(diagnostics) {
		return true
	}
	for _, tree := range trees {
		if treeContainsErrorNode(tree.Root()) {
			return true
		}
	}
	return false
}

// severityContainsError reports whether any diagnostic has ERROR severity.
func severityContainsError(diagnostics []diag.Diagnostic) bool {
	for i := range diagnostics {
		if diagnostics[i].Severity == diag.SevError {
			return true
		}
	}
	return false
}

// treeContainsErrorNode performs a depth-first scan for erroneous marker
// nodes: ERROR nodes the parser inserted for spans it could not build a
// well-formed construct from, and MISSING nodes inserted for tokens it had to
// invent. The scan short-circuits on the first hit; a nil node is never an
// error by itself.
func treeContainsErrorNode(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	if node.IsError() || node.IsMissing() {
		return true
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if treeContainsErrorNode(node.Child(i)) {
			return true
		}
	}
	return false
}
