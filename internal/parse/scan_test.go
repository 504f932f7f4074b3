package parse

import (
	"testing"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"

	"parsecheck/internal/diag"
)

// parseRaw builds a ParsedTree directly with a throwaway parser, bypassing
// the session, so the reconciler can be exercised in isolation.
func parseRaw(t *testing.T, name, code string) *ParsedTree {
	t.Helper()
	lang := sitter.NewLanguage(tree_sitter_go.Language())
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree := parser.Parse([]byte(code), nil)
	if tree == nil {
		t.Fatal("parser produced no tree")
	}
	pt := &ParsedTree{Name: name, Language: "go", Source: []byte(code), tree: tree}
	t.Cleanup(pt.Close)
	return pt
}

func TestSeverityContainsError(t *testing.T) {
	if severityContainsError(nil) {
		t.Error("empty diagnostics must not contain an error")
	}
	warnings := []diag.Diagnostic{
		{Severity: diag.SevWarning, Message: "w"},
		{Severity: diag.SevNote, Message: "n"},
	}
	if severityContainsError(warnings) {
		t.Error("warnings and notes must not count as errors")
	}
	withError := append(warnings, diag.Diagnostic{Severity: diag.SevError, Message: "e"})
	if !severityContainsError(withError) {
		t.Error("expected error severity to be detected")
	}
}

func TestTreeContainsErrorNode(t *testing.T) {
	t.Run("CleanTree", func(t *testing.T) {
		pt := parseRaw(t, "ok.go", "package main\n\nfunc main() {}\n")
		if treeContainsErrorNode(pt.Root()) {
			t.Error("well-formed source must not contain erroneous nodes")
		}
	})

	t.Run("BrokenTree", func(t *testing.T) {
		pt := parseRaw(t, "broken.go", "package main\n\nfunc main() { x := }\n")
		if !treeContainsErrorNode(pt.Root()) {
			t.Error("expected an erroneous node in malformed source")
		}
	})

	t.Run("NilNode", func(t *testing.T) {
		if treeContainsErrorNode(nil) {
			t.Error("a nil node is never an error by itself")
		}
	})
}

// The two error signals are independent: either one alone must reject the
// parse.
func TestFoundParseErrors(t *testing.T) {
	clean := parseRaw(t, "ok.go", "package main\n")
	broken := parseRaw(t, "broken.go", "package main\n\nfunc main() { x := }\n")
	errDiag := []diag.Diagnostic{{Severity: diag.SevError, Message: "e"}}

	t.Run("ErrorNodeWithoutDiagnostics", func(t *testing.T) {
		if !foundParseErrors(nil, []*ParsedTree{broken}) {
			t.Error("an erroneous node must reject the parse even with zero diagnostics")
		}
	})

	t.Run("ErrorDiagnosticWithoutErrorNode", func(t *testing.T) {
		if !foundParseErrors(errDiag, []*ParsedTree{clean}) {
			t.Error("an ERROR diagnostic must reject the parse even with clean trees")
		}
	})

	t.Run("NeitherSignal", func(t *testing.T) {
		warnings := []diag.Diagnostic{{Severity: diag.SevWarning, Message: "w"}}
		if foundParseErrors(warnings, []*ParsedTree{clean}) {
			t.Error("warnings plus clean trees must pass")
		}
	})

	t.Run("NoInput", func(t *testing.T) {
		if foundParseErrors(nil, nil) {
			t.Error("no diagnostics and no trees must pass")
		}
	})
}
