package tui

import (
	"errors"
	"testing"

	"github.com/kinokino2010/mdkanban/internal/domain"
)

func TestUserMessage(t *testing.T) {
	missing := domain.Intent{Command: domain.CommandMoveTask}.Validate()

	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"file not found", &domain.OpError{Op: "mdfile.open", Kind: domain.KindNotFound}, "File not found"},
		{"other not found", &domain.OpError{Op: "cli.resolve_task", Kind: domain.KindNotFound}, "Not found"},
		{"desync", domain.DesyncError("boardsync.edit_task", "todo.md", 4, "- [ ] a", "- [ ] b"), "File changed at line 4, board reloaded; try again"},
		{"missing fields", missing, "Edit rejected: missing kanban, from, to|column"},
		{"apply", &domain.OpError{Op: "boardsync.add_task", Kind: domain.KindApply}, "Could not update the file (see logs)"},
		{"yaml with line", &domain.OpError{Op: "workspacefinder.load", Kind: domain.KindInvalidConfig, Path: "/w/.mdkanban.yaml", Err: errors.New("yaml: line 3: did not find expected key")}, "Invalid YAML at .mdkanban.yaml line 3"},
		{"plain yaml", errors.New("yaml: cannot unmarshal"), "Invalid YAML"},
		{"unknown", errors.New("boom"), "Unexpected error (see logs)"},
	}

	for _, c := range cases {
		if got := userMessage(c.err); got != c.want {
			t.Errorf("%s: expected %q, got %q", c.name, c.want, got)
		}
	}
}
