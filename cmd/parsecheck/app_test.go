package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"parsecheck/internal/core/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(config.Default())
	if err != nil {
		t.Fatal(err)
	}
	return app
}

func TestScanDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main\n")
	writeFile(t, dir, "App.java", "class App {}\n")
	writeFile(t, dir, "notes.txt", "not source\n")
	writeFile(t, dir, filepath.Join("vendor", "dep.go"), "package dep\n")

	app := newTestApp(t)
	files, err := app.ScanDirectories([]string{dir})
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), files)
	}
	for _, f := range files {
		base := filepath.Base(f)
		if base != "main.go" && base != "App.java" {
			t.Errorf("unexpected file selected: %s", f)
		}
	}
}

func TestValidateAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.go", "package main\n")
	writeFile(t, dir, "bad.go", "package main\n\nfunc main() { x := }\n")
	writeFile(t, dir, "Good.java", "class Good {}\n")

	app := newTestApp(t)
	files, err := app.ScanDirectories([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(files))
	}

	failures := app.ValidateAll(context.Background(), files)
	if failures != 1 {
		t.Errorf("expected exactly 1 failure, got %d", failures)
	}
}

func TestValidateFile_Missing(t *testing.T) {
	app := newTestApp(t)
	err := app.ValidateFile(context.Background(), filepath.Join(t.TempDir(), "gone.go"))
	if err == nil {
		t.Fatal("expected a session failure for a missing file")
	}
}
