package parse

import (
	"fmt"
	"sort"
	"strings"

	"parsecheck/internal/core/errors"
)

// LanguageSpec describes one grammar the loader can bind: its identifier and
// the file extensions mapped to it. Disabled languages are never loaded.
type LanguageSpec struct {
	Name       string
	Extensions []string
	Enabled    bool
}

// LanguageOverride adjusts a single language's spec from configuration.
type LanguageOverride struct {
	Enabled    *bool
	Extensions []string
}

// DefaultLanguageRegistry returns the built-in grammar set. Go, Java and
// Python are enabled out of the box; the rest ship disabled and can be turned
// on per project.
func DefaultLanguageRegistry() map[string]LanguageSpec {
	return map[string]LanguageSpec{
		"css": {
			Name:       "css",
			Extensions: []string{".css"},
			Enabled:    false,
		},
		"go": {
			Name:       "go",
			Extensions: []string{".go"},
			Enabled:    true,
		},
		"html": {
			Name:       "html",
			Extensions: []string{".html", ".htm"},
			Enabled:    false,
		},
		"java": {
			Name:       "java",
			Extensions: []string{".java"},
			Enabled:    true,
		},
		"javascript": {
			Name:       "javascript",
			Extensions: []string{".js", ".cjs", ".mjs"},
			Enabled:    false,
		},
		"python": {
			Name:       "python",
			Extensions: []string{".py"},
			Enabled:    true,
		},
		"rust": {
			Name:       "rust",
			Extensions: []string{".rs"},
			Enabled:    false,
		},
		"tsx": {
			Name:       "tsx",
			Extensions: []string{".tsx"},
			Enabled:    false,
		},
		"typescript": {
			Name:       "typescript",
			Extensions: []string{".ts"},
			Enabled:    false,
		},
	}
}

// BuildLanguageRegistry applies configuration overrides on top of the default
// registry and validates the result.
func BuildLanguageRegistry(overrides map[string]LanguageOverride) (map[string]LanguageSpec, error) {
	registry := cloneLanguageRegistry(DefaultLanguageRegistry())
	if overrides == nil {
		return registry, nil
	}

	for language, override := range overrides {
		spec, ok := registry[language]
		if !ok {
			return nil, errors.New(errors.CodeNotSupported,
				fmt.Sprintf("unknown language override %q", language))
		}
		if override.Enabled != nil {
			spec.Enabled = *override.Enabled
		}
		if len(override.Extensions) > 0 {
			spec.Extensions = normalizeExtensions(override.Extensions)
		}
		registry[language] = spec
	}

	if err := validateLanguageRegistry(registry); err != nil {
		return nil, err
	}
	return registry, nil
}

func cloneLanguageRegistry(in map[string]LanguageSpec) map[string]LanguageSpec {
	out := make(map[string]LanguageSpec, len(in))
	for id, spec := range in {
		copySpec := spec
		copySpec.Extensions = append([]string(nil), spec.Extensions...)
		out[id] = copySpec
	}
	return out
}

func validateLanguageRegistry(registry map[string]LanguageSpec) error {
	extOwner := make(map[string]string)

	for _, id := range sortedRegistryIDs(registry) {
		spec := registry[id]
		if !spec.Enabled {
			continue
		}
		for _, ext := range normalizeExtensions(spec.Extensions) {
			if existing, ok := extOwner[ext]; ok && existing != id {
				return errors.New(errors.CodeValidationError,
					fmt.Sprintf("duplicate extension %q owned by %q and %q", ext, existing, id))
			}
			extOwner[ext] = id
		}
	}
	return nil
}

func normalizeExtensions(values []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(values))
	for _, value := range values {
		raw := strings.TrimSpace(strings.ToLower(value))
		if raw == "" {
			continue
		}
		if !strings.HasPrefix(raw, ".") {
			raw = "." + raw
		}
		if seen[raw] {
			continue
		}
		seen[raw] = true
		out = append(out, raw)
	}
	sort.Strings(out)
	return out
}

func sortedRegistryIDs(registry map[string]LanguageSpec) []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
