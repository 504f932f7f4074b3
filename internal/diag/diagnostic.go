// Package diag models parser diagnostics: severity-tagged messages with a
// source position, collected in emission order.
package diag

import (
	"fmt"
	"strings"

	"parsecheck/internal/source"
)

// Diagnostic is one severity-tagged message emitted during a parse stage.
// Immutable once produced.
type Diagnostic struct {
	Severity Severity
	Message  string
	Pos      source.Position
}

// String renders the diagnostic as a single human-readable line. The caller
// embeds these lines verbatim into failure messages.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (%s)", d.Severity, d.Message, d.Pos)
}

// Join renders diagnostics one per line, in their original order.
func Join(items []Diagnostic) string {
	lines := make([]string, len(items))
	for i, d := range items {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}

// GroupBySeverity buckets diagnostics by severity. Relative order within each
// bucket matches the original emission order.
func GroupBySeverity(items []Diagnostic) map[Severity][]Diagnostic {
	groups := make(map[Severity][]Diagnostic)
	for _, d := range items {
		groups[d.Severity] = append(groups[d.Severity], d)
	}
	return groups
}
