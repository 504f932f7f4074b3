package parse

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"parsecheck/internal/diag"
	"parsecheck/internal/source"
)

// Result is the immutable output of a successful parse call: diagnostics
// grouped by severity, the parsed trees in artifact order, and a position
// resolver tied to those trees. The result owns the trees' native memory;
// Close releases it and invalidates the resolver.
type Result struct {
	diagnostics map[diag.Severity][]diag.Diagnostic
	trees       []*ParsedTree
	resolver    *Resolver
}

func newResult(diagnostics []diag.Diagnostic, trees []*ParsedTree) *Result {
	return &Result{
		diagnostics: diag.GroupBySeverity(diagnostics),
		trees:       trees,
		resolver:    newResolver(trees),
	}
}

// Trees returns the parsed trees in the order their artifacts were supplied.
func (r *Result) Trees() []*ParsedTree {
	return append([]*ParsedTree(nil), r.trees...)
}

// Diagnostics returns the diagnostics of one severity, in emission order.
func (r *Result) Diagnostics(severity diag.Severity) []diag.Diagnostic {
	return append([]diag.Diagnostic(nil), r.diagnostics[severity]...)
}

// DiagnosticsBySeverity returns the severity groups. Emission order is
// preserved within each group.
func (r *Result) DiagnosticsBySeverity() map[diag.Severity][]diag.Diagnostic {
	out := make(map[diag.Severity][]diag.Diagnostic, len(r.diagnostics))
	for sev, items := range r.diagnostics {
		out[sev] = append([]diag.Diagnostic(nil), items...)
	}
	return out
}

// Resolver returns the position-resolution handle for this result's trees.
func (r *Result) Resolver() *Resolver {
	return r.resolver
}

// Close releases the native memory of every tree in the bundle. The trees and
// the resolver must not be used afterwards. Idempotent.
func (r *Result) Close() {
	r.resolver.close()
	for _, tree := range r.trees {
		tree.Close()
	}
}

// Resolver answers tree-to-source queries for the trees of exactly one parse
// call. It is invalid once the owning result is closed.
type Resolver struct {
	owned  map[*ParsedTree]bool
	closed bool
}

func newResolver(trees []*ParsedTree) *Resolver {
	owned := make(map[*ParsedTree]bool, len(trees))
	for _, t := range trees {
		owned[t] = true
	}
	return &Resolver{owned: owned}
}

// Position resolves node, which must belong to tree, to a 1-based source
// position. Returns false when the resolver is closed or the tree does not
// belong to this resolver's parse call.
func (r *Resolver) Position(tree *ParsedTree, node *sitter.Node) (source.Position, bool) {
	if !r.valid(tree) || node == nil {
		return source.Position{}, false
	}
	return tree.position(node), true
}

// Text returns the source text covered by node.
func (r *Resolver) Text(tree *ParsedTree, node *sitter.Node) (string, bool) {
	if !r.valid(tree) || node == nil {
		return "", false
	}
	return tree.text(node), true
}

func (r *Resolver) valid(tree *ParsedTree) bool {
	return !r.closed && r.owned[tree] && tree.tree != nil
}

func (r *Resolver) close() {
	r.closed = true
}
