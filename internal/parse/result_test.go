package parse

import (
	"context"
	"testing"

	"parsecheck/internal/source"
)

func TestResolver_PositionAndText(t *testing.T) {
	p := newTestParser(t)

	result, err := p.Parse(context.Background(),
		[]source.Artifact{source.FromString("C.java", "class C {}")}, "resolver input")
	if err != nil {
		t.Fatal(err)
	}
	defer result.Close()

	tree := result.Trees()[0]
	root := tree.Root()
	resolver := result.Resolver()

	pos, ok := resolver.Position(tree, root)
	if !ok {
		t.Fatal("expected the resolver to accept its own tree")
	}
	if pos.File != "C.java" || pos.Line != 1 || pos.Column != 1 {
		t.Errorf("unexpected root position: %v", pos)
	}

	text, ok := resolver.Text(tree, root)
	if !ok {
		t.Fatal("expected the resolver to return text")
	}
	if text != "class C {}" {
		t.Errorf("unexpected root text: %q", text)
	}
}

func TestResolver_RejectsForeignTree(t *testing.T) {
	p := newTestParser(t)

	r1, err := p.Parse(context.Background(),
		[]source.Artifact{source.FromString("a.go", "package a\n")}, "first")
	if err != nil {
		t.Fatal(err)
	}
	defer r1.Close()
	r2, err := p.Parse(context.Background(),
		[]source.Artifact{source.FromString("a.go", "package a\n")}, "second")
	if err != nil {
		t.Fatal(err)
	}
	defer r2.Close()

	foreign := r2.Trees()[0]
	if _, ok := r1.Resolver().Position(foreign, foreign.Root()); ok {
		t.Error("a resolver must reject trees from another call")
	}
}

func TestResult_CloseInvalidatesResolver(t *testing.T) {
	p := newTestParser(t)

	result, err := p.Parse(context.Background(),
		[]source.Artifact{source.FromString("a.go", "package a\n")}, "close semantics")
	if err != nil {
		t.Fatal(err)
	}

	tree := result.Trees()[0]
	root := tree.Root()
	resolver := result.Resolver()

	result.Close()
	if _, ok := resolver.Position(tree, root); ok {
		t.Error("a closed result's resolver must reject queries")
	}
	// Double close must be harmless.
	result.Close()
}
