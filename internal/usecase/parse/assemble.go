package parse

import (
	"fmt"

	"github.com/kinokino2010/mdkanban/internal/domain"
	"github.com/kinokino2010/mdkanban/internal/ports"
)

// Assemble builds the board rooted at the header on line start. The board ends
// before the next header whose level is not deeper than the root. last is the
// final line inside that region.
//
// A deeper header opens a column unless it is also deeper than the current
// column's header, in which case it is a sub-header of that column and is
// skipped. Tasks before the first column go to a synthesized column titled
// defaultColumn.
func Assemble(r ports.LineReader, start int, sourceID, defaultColumn string) (domain.Board, int, error) {
	text, err := r.LineAt(start)
	if err != nil {
		return domain.Board{}, start, readErr(sourceID, start, err)
	}

	root := DecodeLine(start, text)
	if root.Kind != LineHeader {
		return domain.Board{}, start, &domain.OpError{
			Op:   "parse.assemble",
			Kind: domain.KindInvalidInput,
			Path: sourceID,
			Err:  fmt.Errorf("line %d is not a header", start),
		}
	}

	b := domain.Board{
		SourceID: sourceID,
		Line:     start,
		Text:     text,
		Title:    root.Header.Title,
		Level:    root.Header.Level,
		Columns:  []domain.Column{},
	}

	last := start
	n := r.LineCount()
	for i := start + 1; i < n; i++ {
		text, err := r.LineAt(i)
		if err != nil {
			return domain.Board{}, last, readErr(sourceID, i, err)
		}

		l := DecodeLine(i, text)
		switch l.Kind {
		case LineHeader:
			h := l.Header
			if h.Level <= b.Level {
				return b, last, nil
			}
			if cur, ok := b.LastColumn(); ok && !cur.Synthesized && h.Level > cur.Level {
				break
			}
			b.Columns = append(b.Columns, domain.Column{
				Line:  i,
				Text:  text,
				Title: h.Title,
				Level: h.Level,
				Tasks: []domain.Task{},
			})

		case LineTask:
			if len(b.Columns) == 0 {
				b.Columns = append(b.Columns, domain.NewSyntheticColumn(defaultColumn))
			}
			c := &b.Columns[len(b.Columns)-1]
			c.Tasks = append(c.Tasks, l.Task)
		}
		last = i
	}

	return b, last, nil
}

func readErr(sourceID string, line int, err error) error {
	return &domain.OpError{
		Op:   "parse.read_line",
		Kind: domain.KindExecution,
		Path: sourceID,
		Err:  fmt.Errorf("line %d: %w", line, err),
	}
}
