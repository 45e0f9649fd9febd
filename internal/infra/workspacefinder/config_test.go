package workspacefinder

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kinokino2010/mdkanban/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return root
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	root := writeConfig(t, "mdkanban:\n  autosave: false\n")

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	def := domain.DefaultConfig()
	if cfg.Autosave {
		t.Fatalf("expected autosave=false")
	}
	if !reflect.DeepEqual(cfg.Columns, def.Columns) {
		t.Fatalf("expected default columns, got %+v", cfg.Columns)
	}
	if cfg.Rules != def.Rules || cfg.Detect != def.Detect || cfg.Tags != def.Tags {
		t.Fatalf("expected untouched defaults, got %+v", cfg)
	}
	if cfg.Paths.StateDir != ".mdkanban" {
		t.Fatalf("expected state dir=.mdkanban, got=%s", cfg.Paths.StateDir)
	}
}

func TestLoadConfig_OverridesEverything(t *testing.T) {
	root := writeConfig(t, `mdkanban:
  autosave: false
  detect:
    keyword: board
    use_keyword: false
    smart: false
  columns:
    todo: "Backlog, Up next"
    done: [Shipped]
    default: Inbox
  tags:
    start: ""
    end: "#done(%t)"
    time_format: "YYYY/MM/DD"
  rules:
    check_on_move_to_done: false
    set_start_on_move_from_todo: false
  paths:
    state_dir: .state
`)

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Detect != (domain.DetectConfig{Keyword: "board"}) {
		t.Fatalf("unexpected detect %+v", cfg.Detect)
	}
	if !reflect.DeepEqual(cfg.Columns.Todo, []string{"Backlog", "Up next"}) {
		t.Fatalf("unexpected todo names %v", cfg.Columns.Todo)
	}
	if !reflect.DeepEqual(cfg.Columns.Done, []string{"Shipped"}) {
		t.Fatalf("unexpected done names %v", cfg.Columns.Done)
	}
	if cfg.Columns.Default != "Inbox" {
		t.Fatalf("unexpected default column %q", cfg.Columns.Default)
	}
	if cfg.Tags.Start != "" || cfg.Tags.End != "#done(%t)" || cfg.Tags.TimeFormat != "YYYY/MM/DD" {
		t.Fatalf("unexpected tags %+v", cfg.Tags)
	}
	if cfg.Rules.CheckOnMoveToDone || cfg.Rules.SetStartOnMoveFromTodo {
		t.Fatalf("expected disabled rules, got %+v", cfg.Rules)
	}
	if !cfg.Rules.SetEndOnMoveToDone {
		t.Fatalf("expected unspecified rules to keep defaults")
	}
	if cfg.Paths.StateDir != ".state" {
		t.Fatalf("unexpected state dir %q", cfg.Paths.StateDir)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	root := writeConfig(t, "mdkanban: [\n")

	_, err := LoadConfig(root)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got %v", err)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
	if !cfg.Autosave {
		t.Fatalf("expected defaults alongside the error")
	}
}
