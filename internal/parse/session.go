package parse

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	sitter "github.com/tree-sitter/go-tree-sitter"

	"parsecheck/internal/core/errors"
	"parsecheck/internal/diag"
	"parsecheck/internal/shared/observability"
	"parsecheck/internal/source"
)

// session is one single-use invocation of the underlying parser. It owns a
// diagnostic sink and the parser instances leased from the loader's pools,
// and it is never reused or shared across calls. Close releases everything
// the session still owns and is safe to call exactly once per exit path via
// defer.
type session struct {
	id     string
	loader *GrammarLoader
	sink   *diag.Collector

	leased map[string]*sitter.Parser
	trees  []*ParsedTree
	closed bool
}

func newSession(loader *GrammarLoader, maxDiagnostics int) *session {
	return &session{
		id:     uuid.NewString(),
		loader: loader,
		sink:   diag.NewCollector(maxDiagnostics),
		leased: make(map[string]*sitter.Parser),
	}
}

// run executes the parse stage over every artifact, in order. The first
// artifact that cannot be parsed at all aborts the stage with a SessionError;
// syntax problems inside an artifact are reported to the sink instead and do
// not stop the stage.
func (s *session) run(sources []source.Artifact) error {
	for _, artifact := range sources {
		if err := s.parseArtifact(artifact); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) parseArtifact(artifact source.Artifact) error {
	content, err := artifact.Load()
	if err != nil {
		return &SessionError{Artifact: artifact.Name, Err: err}
	}

	lang := artifact.Language
	if lang == "" {
		lang = s.loader.Detect(artifact.Name)
	}
	if lang == "" {
		return &SessionError{
			Artifact: artifact.Name,
			Err: errors.New(errors.CodeNotSupported,
				fmt.Sprintf("no enabled grammar claims %q", artifact.Name)),
		}
	}

	parser, err := s.lease(lang)
	if err != nil {
		return &SessionError{Artifact: artifact.Name, Err: err}
	}

	start := time.Now()
	tree := parser.Parse(content, nil)
	observability.ParsingDuration.WithLabelValues(lang).Observe(time.Since(start).Seconds())
	if tree == nil {
		return &SessionError{
			Artifact: artifact.Name,
			Err:      errors.New(errors.CodeInternal, "parser produced no tree"),
		}
	}

	parsed := &ParsedTree{
		Name:     artifact.Name,
		Language: lang,
		Source:   content,
		tree:     tree,
	}
	s.trees = append(s.trees, parsed)
	s.report(parsed, content)
	return nil
}

// lease borrows a parser for lang, reusing one already leased by this session.
func (s *session) lease(lang string) (*sitter.Parser, error) {
	if parser, ok := s.leased[lang]; ok {
		return parser, nil
	}
	pool, ok := s.loader.Pool(lang)
	if !ok {
		return nil, errors.New(errors.CodeNotFound,
			fmt.Sprintf("grammar not loaded: %s", lang))
	}
	parser := pool.Get()
	s.leased[lang] = parser
	return parser, nil
}

// report feeds the diagnostic sink for one parsed artifact. This is the
// session's diagnostic stream; it is produced independently of the structural
// scan that runs later, and it is capped by the sink, so the two error
// signals are allowed to disagree.
func (s *session) report(parsed *ParsedTree, content []byte) {
	if len(content) == 0 {
		s.sink.Report(diag.Diagnostic{
			Severity: diag.SevNote,
			Message:  "empty source artifact",
			Pos:      source.Position{File: parsed.Name, Line: 1, Column: 1},
		})
		return
	}
	if !utf8.Valid(content) {
		s.sink.Report(diag.Diagnostic{
			Severity: diag.SevError,
			Message:  "source is not valid UTF-8",
			Pos:      source.Position{File: parsed.Name, Line: 1, Column: 1},
		})
	}
	s.reportSyntax(parsed, parsed.Root())
}

// reportSyntax walks the tree and emits one ERROR diagnostic per erroneous
// node, stopping as soon as the sink is full.
func (s *session) reportSyntax(parsed *ParsedTree, node *sitter.Node) {
	if node == nil || s.sink.Full() {
		return
	}
	switch {
	case node.IsError():
		s.sink.Report(diag.Diagnostic{
			Severity: diag.SevError,
			Message:  fmt.Sprintf("syntax error near %q", clip(parsed.text(node))),
			Pos:      parsed.position(node),
		})
	case node.IsMissing():
		s.sink.Report(diag.Diagnostic{
			Severity: diag.SevError,
			Message:  fmt.Sprintf("missing %s", node.Kind()),
			Pos:      parsed.position(node),
		})
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		s.reportSyntax(parsed, node.Child(i))
	}
}

// detachTrees hands ownership of the parsed trees to the caller; Close will
// no longer release them.
func (s *session) detachTrees() []*ParsedTree {
	trees := s.trees
	s.trees = nil
	return trees
}

// Close returns leased parsers to their pools and releases any trees the
// session still owns. Idempotent.
func (s *session) Close() {
	if s.closed {
		return
	}
	s.closed = true

	for lang, parser := range s.leased {
		if pool, ok := s.loader.Pool(lang); ok {
			pool.Put(parser)
		}
	}
	s.leased = nil

	for _, tree := range s.trees {
		tree.Close()
	}
	s.trees = nil
}

// clip bounds a source excerpt for use inside a diagnostic message.
func clip(text string) string {
	const max = 40
	if len(text) > max {
		return text[:max] + "..."
	}
	return text
}
