package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup_WritesJSONLines(t *testing.T) {
	tmp := t.TempDir()

	cleanup, err := Setup(Config{Root: tmp})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}

	if err := IsReady(); err != nil {
		t.Fatalf("expected ready logger, got %v", err)
	}
	want := filepath.Join(tmp, ".mdkanban", "logs", "mdkanban.log")
	if Path() != want {
		t.Fatalf("expected path %q, got %q", want, Path())
	}

	L().Info("board.saved", "file", "todo.md")

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup error: %v", err)
	}
	if err := IsReady(); err == nil {
		t.Fatalf("expected logger reset after cleanup")
	}

	b, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"msg":"logger.initialized"`) || !strings.Contains(s, `"file":"todo.md"`) {
		t.Fatalf("unexpected log content:\n%s", s)
	}
}

func TestSetup_CustomStateDir(t *testing.T) {
	tmp := t.TempDir()

	cleanup, err := Setup(Config{Root: tmp, StateDir: "state", Debug: true})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	defer cleanup()

	if _, err := os.Stat(filepath.Join(tmp, "state", "logs", "mdkanban.log")); err != nil {
		t.Fatalf("expected log file in custom state dir: %v", err)
	}
}
