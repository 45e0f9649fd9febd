package domain

import "strings"

// Header is a transient record of a header line seen during detection.
type Header struct {
	Line  int
	Title string
	Level int
}

// Task is one checkbox line. Its identity is the pair (Line, Text).
type Task struct {
	Line    int      `json:"line"`
	Text    string   `json:"text"`
	Indent  int      `json:"indent"`
	Checked bool     `json:"checked"`
	Title   string   `json:"title"`
	Tags    []string `json:"tags"`
}

// Is reports whether o refers to the same document line as t.
func (t Task) Is(o Task) bool {
	return t.Line == o.Line && t.Text == o.Text
}

// checkboxWidth is the length of "- [ ]".
const checkboxWidth = 5

// Body returns what follows the checkbox, tags included.
func (t Task) Body() string {
	if len(t.Text) < t.Indent+checkboxWidth {
		return ""
	}
	return strings.TrimSpace(t.Text[t.Indent+checkboxWidth:])
}

// Rewrite renders a replacement line for t with the same indentation.
func (t Task) Rewrite(checked bool, body string) string {
	indent := ""
	if t.Indent <= len(t.Text) {
		indent = t.Text[:t.Indent]
	}
	mark := " "
	if checked {
		mark = "x"
	}
	line := indent + "- [" + mark + "]"
	if body = strings.TrimSpace(body); body != "" {
		line += " " + body
	}
	return line
}

// Column groups the tasks under one header. A synthesized column has no header
// line; it exists only to own tasks that appear before the first column header.
type Column struct {
	Line        int    `json:"line"`
	Text        string `json:"text"`
	Title       string `json:"title"`
	Level       int    `json:"level"`
	Synthesized bool   `json:"synthesized,omitempty"`
	Tasks       []Task `json:"tasks"`
}

// NewSyntheticColumn returns the implicit column. It reports line -1 and empty text.
func NewSyntheticColumn(title string) Column {
	return Column{
		Line:        -1,
		Title:       title,
		Synthesized: true,
		Tasks:       []Task{},
	}
}

// Anchor returns the header line of the column, or ok=false for a synthesized column.
func (c Column) Anchor() (line int, text string, ok bool) {
	if c.Synthesized {
		return 0, "", false
	}
	return c.Line, c.Text, true
}

// LastTask returns the final task of the column.
func (c Column) LastTask() (Task, bool) {
	if len(c.Tasks) == 0 {
		return Task{}, false
	}
	return c.Tasks[len(c.Tasks)-1], true
}

// Contains reports whether the column owns t.
func (c Column) Contains(t Task) bool {
	for _, ct := range c.Tasks {
		if ct.Is(t) {
			return true
		}
	}
	return false
}

// Is reports whether o denotes the same column as c. Synthesized columns only
// match each other.
func (c Column) Is(o Column) bool {
	if c.Synthesized || o.Synthesized {
		return c.Synthesized && o.Synthesized
	}
	return c.Line == o.Line && c.Text == o.Text
}

// Board is a header line plus its columns, in source order.
type Board struct {
	SourceID string   `json:"file"`
	Line     int      `json:"line"`
	Text     string   `json:"text"`
	Title    string   `json:"title"`
	Level    int      `json:"level"`
	Columns  []Column `json:"columns"`
}

// ColumnOf returns the column that owns t.
func (b Board) ColumnOf(t Task) (Column, bool) {
	for _, c := range b.Columns {
		if c.Contains(t) {
			return c, true
		}
	}
	return Column{}, false
}

// LastColumn returns the final column of the board.
func (b Board) LastColumn() (Column, bool) {
	if len(b.Columns) == 0 {
		return Column{}, false
	}
	return b.Columns[len(b.Columns)-1], true
}

// TaskCount returns the number of tasks across all columns.
func (b Board) TaskCount() int {
	n := 0
	for _, c := range b.Columns {
		n += len(c.Tasks)
	}
	return n
}

// ColumnKind classifies a column for the transition rules.
type ColumnKind string

const (
	ColumnTodo ColumnKind = "todo"
	ColumnDone ColumnKind = "done"
	ColumnNone ColumnKind = "none"
)
