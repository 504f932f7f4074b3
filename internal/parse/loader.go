package parse

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"parsecheck/internal/core/errors"
	"parsecheck/internal/shared/util"
)

// GrammarLoader binds tree-sitter grammars for every enabled language and
// keeps one parser pool per grammar. A loader is immutable after construction
// and safe for concurrent use; sessions lease parsers from its pools.
type GrammarLoader struct {
	languages map[string]*sitter.Language
	pools     map[string]*ParserPool
	registry  map[string]LanguageSpec
}

func NewGrammarLoader() (*GrammarLoader, error) {
	registry, err := BuildLanguageRegistry(nil)
	if err != nil {
		return nil, err
	}
	return NewGrammarLoaderWithRegistry(registry)
}

func NewGrammarLoaderWithRegistry(registry map[string]LanguageSpec) (*GrammarLoader, error) {
	if registry == nil {
		var err error
		registry, err = BuildLanguageRegistry(nil)
		if err != nil {
			return nil, err
		}
	}

	gl := &GrammarLoader{
		languages: make(map[string]*sitter.Language),
		pools:     make(map[string]*ParserPool),
		registry:  cloneLanguageRegistry(registry),
	}

	for _, langID := range util.SortedStringKeys(gl.registry) {
		spec := gl.registry[langID]
		if !spec.Enabled {
			continue
		}
		switch langID {
		case "css":
			gl.languages["css"] = sitter.NewLanguage(tree_sitter_css.Language())
		case "go":
			gl.languages["go"] = sitter.NewLanguage(tree_sitter_go.Language())
		case "html":
			gl.languages["html"] = sitter.NewLanguage(tree_sitter_html.Language())
		case "java":
			gl.languages["java"] = sitter.NewLanguage(tree_sitter_java.Language())
		case "javascript":
			gl.languages["javascript"] = sitter.NewLanguage(tree_sitter_javascript.Language())
		case "python":
			gl.languages["python"] = sitter.NewLanguage(tree_sitter_python.Language())
		case "rust":
			gl.languages["rust"] = sitter.NewLanguage(tree_sitter_rust.Language())
		case "tsx":
			gl.languages["tsx"] = sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
		case "typescript":
			gl.languages["typescript"] = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
		default:
			return nil, errors.New(errors.CodeNotSupported,
				fmt.Sprintf("language %q is enabled but no grammar binding exists", langID))
		}
	}

	for langID, lang := range gl.languages {
		gl.pools[langID] = NewParserPool(lang)
	}

	return gl, nil
}

// Language returns the bound grammar for a language identifier.
func (gl *GrammarLoader) Language(lang string) (*sitter.Language, bool) {
	l, ok := gl.languages[lang]
	return l, ok
}

// Pool returns the parser pool for a language identifier.
func (gl *GrammarLoader) Pool(lang string) (*ParserPool, bool) {
	p, ok := gl.pools[lang]
	return p, ok
}

// Detect maps an artifact name to a language identifier via the registry's
// extension table. Empty result means no enabled grammar claims the name.
func (gl *GrammarLoader) Detect(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	for _, langID := range util.SortedStringKeys(gl.registry) {
		spec := gl.registry[langID]
		if !spec.Enabled {
			continue
		}
		for _, candidate := range spec.Extensions {
			if candidate == ext {
				return langID
			}
		}
	}
	return ""
}

// LanguageRegistry returns a copy of the effective registry.
func (gl *GrammarLoader) LanguageRegistry() map[string]LanguageSpec {
	return cloneLanguageRegistry(gl.registry)
}

// SupportedExtensions returns the extensions of all enabled languages, sorted.
func (gl *GrammarLoader) SupportedExtensions() []string {
	set := make(map[string]bool)
	for _, spec := range gl.registry {
		if !spec.Enabled {
			continue
		}
		for _, ext := range spec.Extensions {
			set[ext] = true
		}
	}
	return util.SortedStringKeys(set)
}
