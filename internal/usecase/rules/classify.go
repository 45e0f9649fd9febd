package rules

import (
	"strings"
	"unicode"

	"github.com/kinokino2010/mdkanban/internal/domain"
)

// Classifier maps column titles to a ColumnKind using the configured name lists.
type Classifier struct {
	todo map[string]struct{}
	done map[string]struct{}
}

func NewClassifier(cfg domain.ColumnsConfig) Classifier {
	c := Classifier{
		todo: make(map[string]struct{}, len(cfg.Todo)),
		done: make(map[string]struct{}, len(cfg.Done)),
	}
	for _, n := range cfg.Todo {
		if k := Normalize(n); k != "" {
			c.todo[k] = struct{}{}
		}
	}
	for _, n := range cfg.Done {
		if k := Normalize(n); k != "" {
			c.done[k] = struct{}{}
		}
	}
	return c
}

// Classify returns ColumnTodo or ColumnDone when the normalized title is listed,
// ColumnNone otherwise. DONE wins if a name appears in both lists.
func (c Classifier) Classify(title string) domain.ColumnKind {
	k := Normalize(title)
	if _, ok := c.done[k]; ok {
		return domain.ColumnDone
	}
	if _, ok := c.todo[k]; ok {
		return domain.ColumnTodo
	}
	return domain.ColumnNone
}

// Normalize removes all whitespace and upper-cases s.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}
