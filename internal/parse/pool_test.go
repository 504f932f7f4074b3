package parse

import (
	"testing"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
)

func goLanguage() *sitter.Language {
	return sitter.NewLanguage(tree_sitter_go.Language())
}

func TestParserPool_GetPut(t *testing.T) {
	pool := NewParserPool(goLanguage())

	sp := pool.Get()
	if sp == nil {
		t.Fatal("expected non-nil parser from pool")
	}
	if pool.Active() != 1 {
		t.Errorf("expected 1 active lease, got %d", pool.Active())
	}

	pool.Put(sp)
	if pool.Active() != 0 {
		t.Errorf("expected 0 active leases, got %d", pool.Active())
	}
}

func TestParserPool_PutNil(t *testing.T) {
	pool := NewParserPool(goLanguage())
	// Put(nil) must be a no-op.
	pool.Put(nil)
	if pool.Active() != 0 {
		t.Errorf("expected 0 active leases, got %d", pool.Active())
	}
}

func TestParserPool_ParsesAfterReuse(t *testing.T) {
	pool := NewParserPool(goLanguage())

	sp := pool.Get()
	pool.Put(sp)

	sp = pool.Get()
	defer pool.Put(sp)

	tree := sp.Parse([]byte("package main\n\nfunc main() {}\n"), nil)
	if tree == nil {
		t.Fatal("expected a parse tree from a recycled parser")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() {
		t.Fatal("expected an error-free root node from a recycled parser")
	}
}
