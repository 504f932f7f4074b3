package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestWatcher_DetectsWrite(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var got []string
	done := make(chan struct{}, 1)

	w, err := New(50*time.Millisecond, 100, nil, nil, func(paths []string) {
		mu.Lock()
		got = append(got, paths...)
		mu.Unlock()
		select {
		case done <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch([]string{dir}); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "main.go")
	if err := os.WriteFile(path, []byte("package main"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for revalidate callback")
	}

	mu.Lock()
	defer mu.Unlock()
	found := false
	for _, p := range got {
		if p == path {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s in %v", path, got)
	}
}

func TestWatcher_ExcludesFiles(t *testing.T) {
	dir := t.TempDir()

	fired := make(chan []string, 1)
	w, err := New(50*time.Millisecond, 100, nil, []string{"*.tmp"}, func(paths []string) {
		fired <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch([]string{dir}); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "scratch.tmp"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-fired:
		t.Errorf("excluded file must not trigger revalidation, got %v", paths)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher_BadExcludePattern(t *testing.T) {
	_, err := New(time.Millisecond, 1, []string{"[unclosed"}, nil, func([]string) {})
	if err == nil {
		t.Fatal("expected error for invalid glob pattern")
	}
}
