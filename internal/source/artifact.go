// Package source defines the input units handed to the parse stage: named,
// read-only source artifacts and the positions diagnostics point at.
package source

import (
	"fmt"
	"os"
)

// Artifact is one named unit of input source text. In-memory artifacts carry
// their content directly; file-backed artifacts load lazily so that I/O
// failures surface during the parse stage, not at construction.
type Artifact struct {
	Name     string
	Language string // grammar name; detected from the extension when empty
	Content  []byte // nil when file-backed
	Path     string // non-empty when file-backed
}

// FromString builds an in-memory artifact.
func FromString(name, content string) Artifact {
	return Artifact{Name: name, Content: []byte(content)}
}

// FromBytes builds an in-memory artifact. The caller must not mutate content
// after handing it over.
func FromBytes(name string, content []byte) Artifact {
	return Artifact{Name: name, Content: content}
}

// FromFile builds a file-backed artifact. The file is read when the parse
// stage calls Load.
func FromFile(path string) Artifact {
	return Artifact{Name: path, Path: path}
}

// WithLanguage returns a copy of the artifact pinned to a grammar, bypassing
// extension-based detection.
func (a Artifact) WithLanguage(lang string) Artifact {
	a.Language = lang
	return a
}

// Load returns the artifact's content bytes.
func (a Artifact) Load() ([]byte, error) {
	if a.Path != "" {
		data, err := os.ReadFile(a.Path)
		if err != nil {
			return nil, fmt.Errorf("load artifact %s: %w", a.Name, err)
		}
		return data, nil
	}
	return a.Content, nil
}
