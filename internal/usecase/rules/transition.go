// Package rules derives the text of a task moved between columns.
//
// Everything here is pure: callers pass the time explicitly and get a new task
// line back.
package rules

import (
	"strings"
	"time"

	"github.com/kinokino2010/mdkanban/internal/domain"
)

const timeSlot = "%t"

// Derive returns the serialized line of task after moving it from a column of
// kind from to a column of kind to. Rules run in a fixed order: into DONE, into
// TODO, out of DONE, out of TODO.
func Derive(task domain.Task, from, to domain.ColumnKind, cfg domain.Config, now time.Time) string {
	t := task
	t.Tags = append([]string(nil), task.Tags...)

	r := cfg.Rules
	tags := cfg.Tags

	if to == domain.ColumnDone {
		if r.CheckOnMoveToDone {
			t.Checked = true
		}
		if r.SetEndOnMoveToDone {
			t.Tags = setTag(t.Tags, tags.End, MakeTag(tags.End, tags.TimeFormat, now))
		}
	}
	if to == domain.ColumnTodo && r.UnsetStartOnMoveToTodo {
		t.Tags = unsetTag(t.Tags, tags.Start)
	}
	if from == domain.ColumnDone {
		if r.UncheckOnMoveFromDone {
			t.Checked = false
		}
		if r.UnsetEndOnMoveFromDone {
			t.Tags = unsetTag(t.Tags, tags.End)
		}
	}
	if from == domain.ColumnTodo && r.SetStartOnMoveFromTodo {
		t.Tags = setTag(t.Tags, tags.Start, MakeTag(tags.Start, tags.TimeFormat, now))
	}

	return Serialize(t)
}

// IsTag reports whether tag was produced by template. A template with a single
// %t slot matches on its prefix and suffix; any other template must match exactly.
func IsTag(template, tag string) bool {
	parts := strings.Split(template, timeSlot)
	if len(parts) != 2 {
		return tag == template
	}
	prefix, suffix := parts[0], parts[1]
	return len(tag) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(tag, prefix) &&
		strings.HasSuffix(tag, suffix)
}

// MakeTag fills the first %t of template with now formatted by layout.
func MakeTag(template, layout string, now time.Time) string {
	return strings.Replace(template, timeSlot, FormatTime(layout, now), 1)
}

// Serialize renders a task as a checkbox line. Indentation is not preserved.
func Serialize(t domain.Task) string {
	mark := " "
	if t.Checked {
		mark = "x"
	}
	parts := make([]string, 0, 2+len(t.Tags))
	parts = append(parts, "- ["+mark+"]")
	if t.Title != "" {
		parts = append(parts, t.Title)
	}
	parts = append(parts, t.Tags...)
	return strings.TrimSpace(strings.Join(parts, " "))
}

func setTag(tags []string, template, tag string) []string {
	if template == "" {
		return tags
	}
	return append(unsetTag(tags, template), tag)
}

func unsetTag(tags []string, template string) []string {
	if template == "" {
		return tags
	}
	out := tags[:0]
	for _, tag := range tags {
		if !IsTag(template, tag) {
			out = append(out, tag)
		}
	}
	return out
}
