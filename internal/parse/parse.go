// Package parse is a parse-and-validate front end over tree-sitter. It runs
// the parsing stage only — no semantic analysis — and rejects input when the
// diagnostic stream or the shape of any emitted tree shows an error.
package parse

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"parsecheck/internal/diag"
	"parsecheck/internal/shared/observability"
	"parsecheck/internal/source"
)

// DefaultMaxDiagnostics caps the diagnostic sink of each session.
const DefaultMaxDiagnostics = 100

// Parser validates source artifacts by parsing them. It holds no per-call
// state: every Parse call opens its own session, so a Parser is safe for
// concurrent use.
type Parser struct {
	loader         *GrammarLoader
	maxDiagnostics int
}

func NewParser(loader *GrammarLoader) *Parser {
	return NewParserWithLimits(loader, DefaultMaxDiagnostics)
}

func NewParserWithLimits(loader *GrammarLoader, maxDiagnostics int) *Parser {
	if maxDiagnostics <= 0 {
		maxDiagnostics = DefaultMaxDiagnostics
	}
	return &Parser{loader: loader, maxDiagnostics: maxDiagnostics}
}

// Parse parses sources into syntax trees without analyzing them. description
// is opaque and only appears in failure messages.
//
// The call opens a fresh single-use session, runs the parse stage over every
// artifact in order, and releases the session on every exit path. It fails
// with *ParseError when any ERROR diagnostic was emitted or any tree contains
// an erroneous node, and with *SessionError when the stage could not run at
// all (artifact load failure, unknown language, parser failure); in the
// latter case trees already parsed for sibling artifacts are discarded. On
// success the returned Result owns the trees; callers release them with
// Result.Close.
//
// Once started the call runs to completion; there is no cancellation and no
// retry. An empty source list is legal and yields an empty Result.
func (p *Parser) Parse(ctx context.Context, sources []source.Artifact, description string) (*Result, error) {
	_, span := observability.Tracer.Start(ctx, "parse.Parse", trace.WithAttributes(
		attribute.String("description", description),
		attribute.Int("artifacts", len(sources)),
	))
	defer span.End()

	s := newSession(p.loader, p.maxDiagnostics)
	defer s.Close()

	observability.SessionsActive.Inc()
	defer observability.SessionsActive.Dec()

	slog.Debug("parse session opened",
		"session", s.id, "description", description, "artifacts", len(sources))

	if err := s.run(sources); err != nil {
		observability.SessionFailuresTotal.Inc()
		span.RecordError(err)
		return nil, err
	}

	diagnostics := append([]diag.Diagnostic(nil), s.sink.Items()...)
	for _, d := range diagnostics {
		observability.DiagnosticsTotal.WithLabelValues(d.Severity.String()).Inc()
	}

	if foundParseErrors(diagnostics, s.trees) {
		observability.ParseFailuresTotal.Inc()
		err := &ParseError{Description: description, Diagnostics: diagnostics}
		span.RecordError(err)
		return nil, err
	}

	return newResult(diagnostics, s.detachTrees()), nil
}
