package config

import (
	"os"
	"path/filepath"
	"testing"

	"parsecheck/internal/core/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parsecheck.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
version = 1
paths = ["./src"]

[languages.rust]
enabled = true

[limits]
max_diagnostics = 25
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Paths) != 1 || cfg.Paths[0] != "./src" {
		t.Errorf("unexpected paths: %v", cfg.Paths)
	}
	if cfg.Languages["rust"].Enabled == nil || !*cfg.Languages["rust"].Enabled {
		t.Error("expected rust to be enabled")
	}
	if cfg.Limits.MaxDiagnostics != 25 {
		t.Errorf("expected max_diagnostics 25, got %d", cfg.Limits.MaxDiagnostics)
	}
	// Defaults must survive a partial file.
	if len(cfg.Exclude.Dirs) == 0 {
		t.Error("expected default exclude dirs")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.IsCode(err, errors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestLoad_BadTOML(t *testing.T) {
	path := writeConfig(t, "version = [broken")
	_, err := Load(path)
	if !errors.IsCode(err, errors.CodeValidationError) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Run("BadVersion", func(t *testing.T) {
		cfg := Default()
		cfg.Version = 2
		if err := cfg.Validate(); !errors.IsCode(err, errors.CodeValidationError) {
			t.Errorf("expected VALIDATION_ERROR, got %v", err)
		}
	})

	t.Run("NoPaths", func(t *testing.T) {
		cfg := Default()
		cfg.Paths = nil
		if err := cfg.Validate(); !errors.IsCode(err, errors.CodeValidationError) {
			t.Errorf("expected VALIDATION_ERROR, got %v", err)
		}
	})

	t.Run("NegativeLimit", func(t *testing.T) {
		cfg := Default()
		cfg.Limits.MaxDiagnostics = -1
		if err := cfg.Validate(); !errors.IsCode(err, errors.CodeValidationError) {
			t.Errorf("expected VALIDATION_ERROR, got %v", err)
		}
	})

	t.Run("DefaultIsValid", func(t *testing.T) {
		if err := Default().Validate(); err != nil {
			t.Errorf("default config must validate, got %v", err)
		}
	})
}
