package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatcher_ReportsWritesToFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "todo.md")
	if err := os.WriteFile(path, []byte("# Kanban\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	w, err := New(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer w.Close()

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("# Kanban\n## Done\n"), 0o644); err != nil {
			t.Fatalf("rewrite file: %v", err)
		}
	}

	select {
	case ev := <-w.Events():
		if ev.Path != w.Path() {
			t.Fatalf("expected path %q, got %q", w.Path(), ev.Path)
		}
		if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
			t.Fatalf("expected write or create op, got %v", ev.Op)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("expected change event")
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "todo.md")
	if err := os.WriteFile(path, []byte("# Kanban\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	w, err := New(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(tmp, "other.md"), []byte("x\n"), 0o644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}

	select {
	case ev := <-w.Events():
		t.Fatalf("expected no event, got %+v", ev)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_CloseClosesChannels(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "todo.md")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	w, err := New(path)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close error: %v", err)
	}
	if _, ok := <-w.Events(); ok {
		t.Fatalf("expected events channel closed")
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing", "todo.md")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
