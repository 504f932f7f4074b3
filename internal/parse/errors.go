package parse

import (
	"fmt"

	"parsecheck/internal/diag"
)

// ParseError reports that the parse stage rejected the sources: at least one
// ERROR diagnostic was emitted, or at least one tree contains an erroneous
// node. The session's resources are already released when a ParseError is
// returned. The message carries every collected diagnostic so the failure can
// be understood without re-running the parse.
type ParseError struct {
	Description string
	Diagnostics []diag.Diagnostic
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Error while parsing %s:\n%s", e.Description, diag.Join(e.Diagnostics))
}

// SessionError reports that the parse stage could not run at all: an artifact
// failed to load, no grammar claims it, or the underlying parser failed.
// Partially parsed sibling trees are discarded.
type SessionError struct {
	Artifact string
	Err      error
}

func (e *SessionError) Error() string {
	if e.Artifact != "" {
		return fmt.Sprintf("parse session failed on %s: %v", e.Artifact, e.Err)
	}
	return fmt.Sprintf("parse session failed: %v", e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}
