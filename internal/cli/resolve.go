package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/kinokino2010/mdkanban/internal/domain"
	"github.com/kinokino2010/mdkanban/internal/usecase/rules"
)

// resolveBoard accepts a 1-based index or a title. An empty ref is allowed when
// the document holds a single board.
func resolveBoard(snap domain.Snapshot, ref string) (domain.Board, error) {
	ref = strings.TrimSpace(ref)
	if len(snap.Boards) == 0 {
		return domain.Board{}, notFound("board", ref, errNoBoards)
	}
	if ref == "" {
		if len(snap.Boards) == 1 {
			return snap.Boards[0], nil
		}
		return domain.Board{}, ambiguous("board", ref, fmt.Sprintf("%d boards found, use --board", len(snap.Boards)))
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(snap.Boards) {
			return domain.Board{}, notFound("board", ref, fmt.Errorf("index out of range 1..%d", len(snap.Boards)))
		}
		return snap.Boards[n-1], nil
	}

	var hits []domain.Board
	for _, b := range snap.Boards {
		if sameName(b.Title, ref) {
			hits = append(hits, b)
		}
	}
	switch len(hits) {
	case 0:
		return domain.Board{}, notFound("board", ref, domain.ErrNotFound)
	case 1:
		return hits[0], nil
	default:
		return domain.Board{}, ambiguous("board", ref, fmt.Sprintf("%d boards share this title, use an index", len(hits)))
	}
}

// resolveColumn accepts a title or a 1-based index.
func resolveColumn(b domain.Board, ref string) (domain.Column, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Column{}, fmt.Errorf("column is required")
	}

	for _, c := range b.Columns {
		if sameName(c.Title, ref) {
			return c, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(b.Columns) {
			return domain.Column{}, notFound("column", ref, fmt.Errorf("index out of range 1..%d", len(b.Columns)))
		}
		return b.Columns[n-1], nil
	}
	return domain.Column{}, notFound("column", ref, domain.ErrNotFound)
}

// resolveTask accepts COLUMN/N or a title. Titles are matched exactly first,
// then fuzzily, keeping the best score.
func resolveTask(b domain.Board, ref string) (domain.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Task{}, fmt.Errorf("task is required")
	}

	if i := strings.LastIndex(ref, "/"); i > 0 {
		if n, err := strconv.Atoi(ref[i+1:]); err == nil {
			col, cerr := resolveColumn(b, ref[:i])
			if cerr == nil {
				if n < 1 || n > len(col.Tasks) {
					return domain.Task{}, notFound("task", ref, fmt.Errorf("column %q has %d task(s)", col.Title, len(col.Tasks)))
				}
				return col.Tasks[n-1], nil
			}
		}
	}

	var tasks []domain.Task
	var titles []string
	for _, c := range b.Columns {
		for _, t := range c.Tasks {
			tasks = append(tasks, t)
			titles = append(titles, t.Title)
		}
	}

	var exact []domain.Task
	for _, t := range tasks {
		if sameName(t.Title, ref) {
			exact = append(exact, t)
		}
	}
	switch len(exact) {
	case 1:
		return exact[0], nil
	case 0:
	default:
		return domain.Task{}, ambiguous("task", ref, fmt.Sprintf("%d tasks share this title, use COLUMN/N", len(exact)))
	}

	matches := fuzzy.Find(ref, titles)
	if len(matches) == 0 {
		return domain.Task{}, notFound("task", ref, domain.ErrNotFound)
	}
	if len(matches) > 1 && matches[0].Score == matches[1].Score {
		return domain.Task{}, ambiguous("task", ref, fmt.Sprintf("%q and %q match equally", matches[0].Str, matches[1].Str))
	}
	return tasks[matches[0].Index], nil
}

func sameName(a, b string) bool {
	return rules.Normalize(a) == rules.Normalize(b)
}

func notFound(what, ref string, err error) error {
	return &domain.OpError{
		Op:   "cli.resolve_" + what,
		Kind: domain.KindNotFound,
		Err:  fmt.Errorf("%s %q: %w", what, ref, err),
	}
}

func ambiguous(what, ref, detail string) error {
	return &domain.OpError{
		Op:   "cli.resolve_" + what,
		Kind: domain.KindInvalidInput,
		Err:  fmt.Errorf("%s %q: %s: %w", what, ref, detail, domain.ErrAmbiguous),
	}
}
