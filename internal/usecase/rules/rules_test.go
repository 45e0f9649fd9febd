package rules

import (
	"testing"
	"time"

	"github.com/kinokino2010/mdkanban/internal/domain"
)

var fixedNow = time.Date(2024, 3, 7, 9, 5, 2, 0, time.UTC)

func testConfig() domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Tags.Start = "#start(%t)"
	cfg.Tags.End = "#end(%t)"
	cfg.Tags.TimeFormat = "YYYY-MM-DD"
	return cfg
}

// --- Classify ---

func TestClassify_NormalizesWhitespaceAndCase(t *testing.T) {
	c := NewClassifier(domain.ColumnsConfig{
		Todo: []string{"To do", "Backlog"},
		Done: []string{"Done"},
	})

	cases := []struct {
		title string
		want  domain.ColumnKind
	}{
		{"To do", domain.ColumnTodo},
		{"TODO", domain.ColumnTodo},
		{"  to\tdo ", domain.ColumnTodo},
		{"backlog", domain.ColumnTodo},
		{"Done", domain.ColumnDone},
		{"D o n e", domain.ColumnDone},
		{"Doing", domain.ColumnNone},
		{"", domain.ColumnNone},
	}
	for _, c2 := range cases {
		if got := c.Classify(c2.title); got != c2.want {
			t.Errorf("Classify(%q) = %s, want %s", c2.title, got, c2.want)
		}
	}
}

func TestClassify_DoneWinsOnConflict(t *testing.T) {
	c := NewClassifier(domain.ColumnsConfig{Todo: []string{"Done"}, Done: []string{"done"}})
	if got := c.Classify("Done"); got != domain.ColumnDone {
		t.Fatalf("expected done, got %s", got)
	}
}

// --- FormatTime ---

func TestFormatTime(t *testing.T) {
	cases := []struct {
		layout string
		want   string
	}{
		{"YYYY-MM-DD", "2024-03-07"},
		{"YYYY-MM-DDTHH:mm", "2024-03-07T09:05"},
		{"HH:mm:ss", "09:05:02"},
		{"YYYY/YYYY", "2024/YYYY"},
		{"plain", "plain"},
	}
	for _, c := range cases {
		if got := FormatTime(c.layout, fixedNow); got != c.want {
			t.Errorf("FormatTime(%q) = %q, want %q", c.layout, got, c.want)
		}
	}
}

// --- IsTag / MakeTag ---

func TestIsTag(t *testing.T) {
	cases := []struct {
		template, tag string
		want          bool
	}{
		{"#end(%t)", "#end(2024-01-01)", true},
		{"#end(%t)", "#end()", true},
		{"#end(%t)", "#end", false},
		{"#end(%t)", "#start(2024-01-01)", false},
		{"@done", "@done", true},
		{"@done", "@done2", false},
		{"%t%t", "%t%t", true},
		{"#a(%t)b", "#a(", false},
	}
	for _, c := range cases {
		if got := IsTag(c.template, c.tag); got != c.want {
			t.Errorf("IsTag(%q, %q) = %v, want %v", c.template, c.tag, got, c.want)
		}
	}
}

func TestMakeTag(t *testing.T) {
	if got := MakeTag("#end(%t)", "YYYY-MM-DD", fixedNow); got != "#end(2024-03-07)" {
		t.Fatalf("unexpected tag %q", got)
	}
	if got := MakeTag("@done", "YYYY", fixedNow); got != "@done" {
		t.Fatalf("template without slot must be kept, got %q", got)
	}
}

// --- Serialize ---

func TestSerialize(t *testing.T) {
	cases := []struct {
		task domain.Task
		want string
	}{
		{domain.Task{Title: "buy milk"}, "- [ ] buy milk"},
		{domain.Task{Checked: true, Title: "buy milk", Tags: []string{"@home", "#p1"}}, "- [x] buy milk @home #p1"},
		{domain.Task{Tags: []string{"@only"}}, "- [ ] @only"},
		{domain.Task{Indent: 4, Title: "nested"}, "- [ ] nested"},
		{domain.Task{}, "- [ ]"},
	}
	for _, c := range cases {
		if got := Serialize(c.task); got != c.want {
			t.Errorf("Serialize(%+v) = %q, want %q", c.task, got, c.want)
		}
	}
}

// --- Derive ---

func TestDerive_TodoToDone(t *testing.T) {
	cfg := testConfig()
	cfg.Rules = domain.RulesConfig{CheckOnMoveToDone: true, SetEndOnMoveToDone: true}

	got := Derive(domain.Task{Title: "buy milk"}, domain.ColumnTodo, domain.ColumnDone, cfg, fixedNow)

	want := "- [x] buy milk #end(2024-03-07)"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDerive_TodoToDoneAllRules(t *testing.T) {
	task := domain.Task{Title: "buy milk", Tags: []string{"#start(2024-01-01)", "#end(2023-01-01)"}}

	got := Derive(task, domain.ColumnTodo, domain.ColumnDone, testConfig(), fixedNow)

	want := "- [x] buy milk #end(2024-03-07) #start(2024-03-07)"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDerive_DoneToTodo(t *testing.T) {
	task := domain.Task{Checked: true, Title: "buy milk", Tags: []string{"@home", "#end(2024-01-01)"}}

	got := Derive(task, domain.ColumnDone, domain.ColumnTodo, testConfig(), fixedNow)

	if got != "- [ ] buy milk @home" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestDerive_TodoToOther(t *testing.T) {
	task := domain.Task{Title: "write report", Tags: []string{"#start(2023-12-31)"}}

	got := Derive(task, domain.ColumnTodo, domain.ColumnNone, testConfig(), fixedNow)

	if got != "- [ ] write report #start(2024-03-07)" {
		t.Fatalf("expected start tag replaced, got %q", got)
	}
}

func TestDerive_NoneToNoneKeepsContent(t *testing.T) {
	task := domain.Task{Title: "a", Tags: []string{"@x"}}

	got := Derive(task, domain.ColumnNone, domain.ColumnNone, testConfig(), fixedNow)

	if got != "- [ ] a @x" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestDerive_RulesCanBeDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Rules = domain.RulesConfig{}

	task := domain.Task{Title: "a", Tags: []string{"#start(1)"}}
	got := Derive(task, domain.ColumnTodo, domain.ColumnDone, cfg, fixedNow)

	if got != "- [ ] a #start(1)" {
		t.Fatalf("expected no side effects, got %q", got)
	}
}

func TestDerive_DoesNotMutateInput(t *testing.T) {
	task := domain.Task{Title: "a", Tags: []string{"#end(1)", "@x"}}

	_ = Derive(task, domain.ColumnDone, domain.ColumnNone, testConfig(), fixedNow)

	if len(task.Tags) != 2 || task.Tags[0] != "#end(1)" {
		t.Fatalf("input tags mutated: %v", task.Tags)
	}
}
