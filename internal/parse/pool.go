package parse

import (
	"sync"
	"sync/atomic"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ParserPool recycles tree-sitter parser instances for a single grammar so
// that sessions do not pay the sitter.NewParser()/Close() allocation cost per
// call. Sessions lease a parser for the duration of one call and return it on
// session close.
//
// Concurrency: safe for use by multiple goroutines simultaneously.
type ParserPool struct {
	lang   *sitter.Language
	pool   sync.Pool
	active atomic.Int64
}

// NewParserPool creates a pool for the given language grammar. The language
// must remain valid for the lifetime of the pool.
func NewParserPool(lang *sitter.Language) *ParserPool {
	p := &ParserPool{lang: lang}
	p.pool = sync.Pool{
		New: func() any {
			sp := sitter.NewParser()
			sp.SetLanguage(lang)
			return sp
		},
	}
	return p
}

// Get leases a parser configured for the pool's language.
func (p *ParserPool) Get() *sitter.Parser {
	sp := p.pool.Get().(*sitter.Parser)
	// The language must be re-applied in case the parser was Reset externally.
	sp.SetLanguage(p.lang)
	p.active.Add(1)
	return sp
}

// Put returns a leased parser. The parser is reset before being stored so no
// references to previous parse state are retained. Callers must not use sp
// after calling Put.
func (p *ParserPool) Put(sp *sitter.Parser) {
	if sp == nil {
		return
	}
	p.active.Add(-1)
	sp.Reset()
	p.pool.Put(sp)
}

// Active returns the number of currently leased parsers.
func (p *ParserPool) Active() int {
	return int(p.active.Load())
}
