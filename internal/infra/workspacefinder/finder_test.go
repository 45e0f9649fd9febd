package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kinokino2010/mdkanban/internal/domain"
)

func TestFindRoot_FindsWorkspaceFromNestedDir(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "ws")
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte("mdkanban:\n  autosave: true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	got, err := NewFinder().FindRoot(nested)
	if err != nil {
		t.Fatalf("FindRoot returned error: %v", err)
	}
	if got != root {
		t.Fatalf("expected root=%s, got=%s", root, got)
	}
}

func TestFindRoot_AcceptsFilePath(t *testing.T) {
	tmp := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmp, ConfigFileName), []byte(""), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	file := filepath.Join(tmp, "todo.md")
	if err := os.WriteFile(file, []byte("# Kanban\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := NewFinder().FindRoot(file)
	if err != nil {
		t.Fatalf("FindRoot returned error: %v", err)
	}
	if got != tmp {
		t.Fatalf("expected root=%s, got=%s", tmp, got)
	}
}

func TestFindRoot_NotFound(t *testing.T) {
	tmp := t.TempDir()
	_ = os.MkdirAll(filepath.Join(tmp, "a", "b"), 0o755)

	f := &Finder{ConfigFile: "does-not-exist.yaml"}
	_, err := f.FindRoot(filepath.Join(tmp, "a", "b"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got: %v", err)
	}
}

func TestResolve_FallsBackToFileDirAndDefaults(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "todo.md")
	if err := os.WriteFile(file, []byte("# Kanban\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	f := &Finder{ConfigFile: "does-not-exist.yaml"}
	root, cfg, err := f.Resolve(file)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if root != tmp {
		t.Fatalf("expected root=%s, got %s", tmp, root)
	}
	if cfg.Columns.Default != "To do" {
		t.Fatalf("expected default config, got %+v", cfg.Columns)
	}
}
