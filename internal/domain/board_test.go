package domain

import "testing"

func TestNewSyntheticColumn(t *testing.T) {
	c := NewSyntheticColumn("To do")

	if c.Line != -1 || c.Text != "" {
		t.Fatalf("expected line=-1 text=\"\", got line=%d text=%q", c.Line, c.Text)
	}
	if !c.Synthesized {
		t.Fatalf("expected synthesized column")
	}
	if _, _, ok := c.Anchor(); ok {
		t.Fatalf("synthesized column must not report an anchor")
	}
}

func TestColumn_Is(t *testing.T) {
	a := Column{Line: 2, Text: "## Doing", Title: "Doing"}
	b := Column{Line: 2, Text: "## Doing", Title: "Doing"}
	moved := Column{Line: 3, Text: "## Doing", Title: "Doing"}
	s1 := NewSyntheticColumn("To do")
	s2 := NewSyntheticColumn("Backlog")

	cases := []struct {
		name string
		x, y Column
		want bool
	}{
		{"same header", a, b, true},
		{"different line", a, moved, false},
		{"both synthesized", s1, s2, true},
		{"synthesized vs real", s1, a, false},
	}
	for _, c := range cases {
		if got := c.x.Is(c.y); got != c.want {
			t.Errorf("%s: Is = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestBoard_ColumnOf(t *testing.T) {
	task := Task{Line: 3, Text: "- [ ] a"}
	b := Board{
		Columns: []Column{
			{Line: 1, Text: "## Todo", Tasks: []Task{{Line: 2, Text: "- [ ] z"}}},
			{Line: 4, Text: "## Done", Tasks: []Task{task}},
		},
	}

	col, ok := b.ColumnOf(task)
	if !ok || col.Line != 4 {
		t.Fatalf("expected Done column, got ok=%v col=%+v", ok, col)
	}

	if _, ok := b.ColumnOf(Task{Line: 3, Text: "- [ ] changed"}); ok {
		t.Fatalf("expected no column for unknown task")
	}
	if b.TaskCount() != 2 {
		t.Fatalf("expected 2 tasks, got %d", b.TaskCount())
	}
}

func TestColumn_LastTask(t *testing.T) {
	c := Column{Tasks: []Task{{Line: 1}, {Line: 2}}}
	last, ok := c.LastTask()
	if !ok || last.Line != 2 {
		t.Fatalf("expected last task line 2, got ok=%v %+v", ok, last)
	}
	if _, ok := (Column{}).LastTask(); ok {
		t.Fatalf("expected no last task on empty column")
	}
}

func TestTask_BodyAndRewrite(t *testing.T) {
	task := Task{Line: 4, Text: "  - [ ] Write docs @alice", Indent: 2}

	if got := task.Body(); got != "Write docs @alice" {
		t.Fatalf("expected body %q, got %q", "Write docs @alice", got)
	}
	if got := task.Rewrite(true, task.Body()); got != "  - [x] Write docs @alice" {
		t.Fatalf("unexpected rewrite: %q", got)
	}
	if got := task.Rewrite(false, "  "); got != "  - [ ]" {
		t.Fatalf("expected bare checkbox, got %q", got)
	}

	tabbed := Task{Text: "\t- [x]", Indent: 1, Checked: true}
	if tabbed.Body() != "" {
		t.Fatalf("expected empty body, got %q", tabbed.Body())
	}
	if got := tabbed.Rewrite(false, "Ship"); got != "\t- [ ] Ship" {
		t.Fatalf("expected tab indent kept, got %q", got)
	}
}
