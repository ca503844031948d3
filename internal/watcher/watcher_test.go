package watcher

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestWatcher(t *testing.T, dir string, files []string) *Watcher {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w, err := New(dir, files, logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(w.Stop)
	return w
}

func TestWatcherReportsWatchedFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	w := newTestWatcher(t, dir, []string{path})

	if err := os.WriteFile(path, []byte("regular:\n  accent: blur\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Changes():
		if got != path {
			t.Fatalf("change path=%q, want %q", got, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no change reported")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "config.yaml")
	w := newTestWatcher(t, dir, []string{watched})

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Changes():
		t.Fatalf("unexpected change reported: %q", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherCoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	w := newTestWatcher(t, dir, []string{path})

	// A save typically lands as several writes in quick succession.
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("verbose: true\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatalf("no change reported")
	}

	select {
	case <-w.Changes():
		t.Fatalf("burst was not coalesced")
	case <-time.After(300 * time.Millisecond):
	}
}
