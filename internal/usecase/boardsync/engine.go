// Package boardsync turns board edits into text mutations of the backing document.
//
// Every operation first checks that the lines it depends on still hold the text
// recorded in the snapshot. Nothing is written if a check fails.
package boardsync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kinokino2010/mdkanban/internal/domain"
	"github.com/kinokino2010/mdkanban/internal/ports"
	"github.com/kinokino2010/mdkanban/internal/usecase/rules"
)

type Engine struct {
	doc        ports.Document
	cfg        domain.Config
	classifier rules.Classifier
	now        func() time.Time
}

type Option func(*Engine)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func New(doc ports.Document, cfg domain.Config, opts ...Option) *Engine {
	e := &Engine{
		doc:        doc,
		cfg:        cfg,
		classifier: rules.NewClassifier(cfg.Columns),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddTask appends an unchecked task with title at the end of col.
func (e *Engine) AddTask(ctx context.Context, board domain.Board, col domain.Column, title string) error {
	const op = "boardsync.add_task"

	line, text := columnEnd(board, col)
	if err := e.verify(op, line, text); err != nil {
		return err
	}

	edits := []domain.Edit{
		domain.Insert(domain.LineStart(line+1), "- [ ] "+title+e.doc.EOL()),
	}
	return e.apply(ctx, op, edits)
}

// AddColumn appends a header one level below the board after its last line.
func (e *Engine) AddColumn(ctx context.Context, board domain.Board, title string) error {
	const op = "boardsync.add_column"

	line, text := boardEnd(board)
	if err := e.verify(op, line, text); err != nil {
		return err
	}

	eol := e.doc.EOL()
	header := strings.Repeat("#", board.Level+1) + " " + title
	edits := []domain.Edit{
		domain.Insert(domain.LineStart(line+1), eol+header+eol),
	}
	return e.apply(ctx, op, edits)
}

// EditTask replaces the line of old with newText.
func (e *Engine) EditTask(ctx context.Context, old domain.Task, newText string) error {
	const op = "boardsync.edit_task"

	if err := e.verify(op, old.Line, old.Text); err != nil {
		return err
	}

	edits := []domain.Edit{
		domain.Replace(lineRange(old), newText),
	}
	return e.apply(ctx, op, edits)
}

// RemoveTask deletes the line of task including its terminator.
func (e *Engine) RemoveTask(ctx context.Context, task domain.Task) error {
	const op = "boardsync.remove_task"

	if err := e.verify(op, task.Line, task.Text); err != nil {
		return err
	}

	edits := []domain.Edit{
		domain.Delete(domain.Range{
			Start: domain.LineStart(task.Line),
			End:   domain.LineStart(task.Line + 1),
		}),
	}
	return e.apply(ctx, op, edits)
}

// Move describes the destination of a moved task: directly after To, or at the
// end of Column when To is nil.
type Move struct {
	From   domain.Task
	To     *domain.Task
	Column *domain.Column
}

// MoveTask relocates a task within board. Crossing into a column of another
// kind rewrites the line with the transition rules; moves inside one column
// keep the text as is.
func (e *Engine) MoveTask(ctx context.Context, board domain.Board, mv Move) error {
	const op = "boardsync.move_task"

	fromCol, ok := board.ColumnOf(mv.From)
	if !ok {
		return invalid(op, board.SourceID, fmt.Errorf("task on line %d is not on board %q", mv.From.Line, board.Title))
	}

	var toCol domain.Column
	var anchorLine int
	var anchorText string
	switch {
	case mv.To != nil:
		toCol, ok = board.ColumnOf(*mv.To)
		if !ok {
			return invalid(op, board.SourceID, fmt.Errorf("target task on line %d is not on board %q", mv.To.Line, board.Title))
		}
		anchorLine, anchorText = mv.To.Line, mv.To.Text
	case mv.Column != nil:
		toCol, ok = findColumn(board, *mv.Column)
		if !ok {
			return invalid(op, board.SourceID, fmt.Errorf("column %q is not on board %q", mv.Column.Title, board.Title))
		}
		anchorLine, anchorText = columnEnd(board, toCol)
	default:
		return invalid(op, board.SourceID, errors.New("move needs a target task or column"))
	}

	if err := e.verify(op, mv.From.Line, mv.From.Text); err != nil {
		return err
	}
	if err := e.verify(op, anchorLine, anchorText); err != nil {
		return err
	}

	text := mv.From.Text
	if !fromCol.Is(toCol) {
		text = rules.Derive(
			mv.From,
			e.classifier.Classify(fromCol.Title),
			e.classifier.Classify(toCol.Title),
			e.cfg,
			e.now(),
		)
	}

	edits := []domain.Edit{
		domain.Delete(domain.Range{
			Start: domain.LineStart(mv.From.Line),
			End:   domain.LineStart(mv.From.Line + 1),
		}),
		domain.Insert(domain.LineStart(anchorLine+1), text+e.doc.EOL()),
	}
	return e.apply(ctx, op, edits)
}

func (e *Engine) verify(op string, line int, want string) error {
	got, err := e.doc.LineAt(line)
	if err != nil {
		return domain.DesyncError(op, e.doc.ID(), line, want, "<no line>")
	}
	if got != want {
		return domain.DesyncError(op, e.doc.ID(), line, want, got)
	}
	return nil
}

func (e *Engine) apply(ctx context.Context, op string, edits []domain.Edit) error {
	if err := e.doc.Apply(ctx, edits); err != nil {
		return &domain.OpError{
			Op:   op,
			Kind: domain.KindApply,
			Path: e.doc.ID(),
			Err:  err,
		}
	}
	return nil
}

// columnEnd returns the last line owned by col: its last task, its header, or
// the board header for an empty synthesized column.
func columnEnd(board domain.Board, col domain.Column) (int, string) {
	if t, ok := col.LastTask(); ok {
		return t.Line, t.Text
	}
	if line, text, ok := col.Anchor(); ok {
		return line, text
	}
	return board.Line, board.Text
}

func boardEnd(board domain.Board) (int, string) {
	if col, ok := board.LastColumn(); ok {
		return columnEnd(board, col)
	}
	return board.Line, board.Text
}

func findColumn(board domain.Board, col domain.Column) (domain.Column, bool) {
	for _, c := range board.Columns {
		if c.Is(col) {
			return c, true
		}
	}
	return domain.Column{}, false
}

func lineRange(t domain.Task) domain.Range {
	return domain.Range{
		Start: domain.LineStart(t.Line),
		End:   domain.Position{Line: t.Line, Character: len(t.Text)},
	}
}

func invalid(op, source string, err error) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindInvalidIntent,
		Path: source,
		Err:  err,
	}
}
