package tui

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/kinokino2010/mdkanban/internal/domain"
)

type mode int

const (
	modeBoard mode = iota
	modeInput
	modeFilter
	modeConfirmDelete
)

type inputAction int

const (
	inputAddTask inputAction = iota
	inputAddColumn
	inputEditTask
)

type model struct {
	theme Theme
	deps  Deps
	keys  keyMap
	help  help.Model

	snap  domain.Snapshot
	board int
	col   int
	row   int

	mode   mode
	action inputAction
	input  textinput.Model

	filter   string
	filtered [][]int

	toast     string
	quitArmed bool

	width  int
	height int
}

func Run(deps Deps) error {
	m := newModel(deps)
	m = m.refresh()

	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	in := textinput.New()
	in.CharLimit = 500

	return model{
		theme: DefaultTheme(),
		deps:  deps,
		keys:  defaultKeys(),
		help:  help.New(),
		input: in,
	}
}

func (m model) Init() tea.Cmd {
	return waitForChange(m.deps.Watcher)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case fileChangedMsg:
		m.deps.Logger.Debug("watch.event", "file", m.deps.Document.ID(), "op", msg.op)
		m = m.reload()
		return m, waitForChange(m.deps.Watcher)

	case watchErrMsg:
		m.deps.Logger.Warn("watch.error", "err", msg.err)
		return m, waitForChange(m.deps.Watcher)

	case tea.KeyMsg:
		switch m.mode {
		case modeInput:
			return m.updateInput(msg)
		case modeFilter:
			return m.updateFilter(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateBoard(msg)
		}
	}
	return m, nil
}

func (m model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Quit) {
		if m.deps.Document.Dirty() && !m.quitArmed {
			m.quitArmed = true
			m.toast = "Unsaved changes: press q again to quit, s to save"
			return m, nil
		}
		return m, tea.Quit
	}
	m.quitArmed = false
	m.toast = ""

	switch {
	case key.Matches(msg, m.keys.Left):
		m.selectColumn(m.col - 1)
	case key.Matches(msg, m.keys.Right):
		m.selectColumn(m.col + 1)
	case key.Matches(msg, m.keys.Up):
		m.selectRow(m.row - 1)
	case key.Matches(msg, m.keys.Down):
		m.selectRow(m.row + 1)

	case key.Matches(msg, m.keys.MoveLeft):
		m = m.moveAcross(-1)
	case key.Matches(msg, m.keys.MoveRight):
		m = m.moveAcross(1)
	case key.Matches(msg, m.keys.MoveUp):
		m = m.moveWithin(-1)
	case key.Matches(msg, m.keys.MoveDown):
		m = m.moveWithin(1)

	case key.Matches(msg, m.keys.Toggle):
		if b, t, ok := m.selection(); ok {
			m = m.dispatch(toggleIntent(b, t))
		}

	case key.Matches(msg, m.keys.Add):
		if _, ok := m.currentColumn(); ok {
			return m.startInput(inputAddTask, "New task", "")
		}
	case key.Matches(msg, m.keys.AddColumn):
		if _, ok := m.currentBoard(); ok {
			return m.startInput(inputAddColumn, "New column", "")
		}
	case key.Matches(msg, m.keys.Edit):
		if _, t, ok := m.selection(); ok {
			return m.startInput(inputEditTask, "Edit task", t.Body())
		}
	case key.Matches(msg, m.keys.Remove):
		if _, _, ok := m.selection(); ok {
			m.mode = modeConfirmDelete
		}

	case key.Matches(msg, m.keys.Filter):
		m.mode = modeFilter
		m.input.Placeholder = "filter"
		m.input.SetValue(m.filter)
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.NextBoard):
		if n := len(m.snap.Boards); n > 1 {
			m.board = (m.board + 1) % n
			m.col, m.row = 0, 0
			m.recomputeFilter()
		}

	case key.Matches(msg, m.keys.Save):
		if err := m.deps.Document.Save(context.Background()); err != nil {
			m.toast = userMessage(err)
		} else {
			m.deps.Logger.Info("document.saved", "file", m.deps.Document.ID())
			m.toast = "Saved"
		}

	case key.Matches(msg, m.keys.Reload):
		m = m.reload()
	}
	return m, nil
}

func (m model) startInput(action inputAction, placeholder, value string) (tea.Model, tea.Cmd) {
	m.mode = modeInput
	m.action = action
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBoard
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		m.mode = modeBoard
		m.input.Blur()
		if value == "" {
			return m, nil
		}
		return m.submit(value), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) submit(value string) model {
	b, ok := m.currentBoard()
	if !ok {
		return m
	}

	switch m.action {
	case inputAddTask:
		c, ok := m.currentColumn()
		if !ok {
			return m
		}
		m = m.dispatch(addTaskIntent(b, c, value))
		m.selectRow(len(m.visibleTasks(m.col)) - 1)

	case inputAddColumn:
		m = m.dispatch(addColumnIntent(b, value))
		if nb, ok := m.currentBoard(); ok {
			m.selectColumn(len(nb.Columns) - 1)
		}

	case inputEditTask:
		if _, t, ok := m.selection(); ok {
			m = m.dispatch(editIntent(b, t, value))
		}
	}
	return m
}

func (m model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBoard
		m.input.Blur()
		m.filter = ""
		m.recomputeFilter()
		return m, nil
	case tea.KeyEnter:
		m.mode = modeBoard
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filter = strings.TrimSpace(m.input.Value())
	m.recomputeFilter()
	return m, cmd
}

func (m model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeBoard
	switch msg.String() {
	case "y", "Y":
		b, t, ok := m.selection()
		if !ok {
			return m, nil
		}
		c, _ := b.ColumnOf(t)
		m = m.dispatch(removeIntent(b, c, t))
	}
	return m, nil
}

// moveAcross sends the selected task to the end of the neighbour column and
// keeps it selected.
func (m model) moveAcross(delta int) model {
	b, t, ok := m.selection()
	if !ok {
		return m
	}
	target := m.col + delta
	if target < 0 || target >= len(b.Columns) {
		return m
	}

	m = m.dispatch(moveToColumnIntent(b, t, b.Columns[target]))
	if m.toast == "" {
		m.selectColumn(target)
		m.selectRow(len(m.visibleTasks(target)) - 1)
	}
	return m
}

// moveWithin swaps the selected task with its neighbour in the same column.
func (m model) moveWithin(delta int) model {
	b, _, ok := m.selection()
	if !ok {
		return m
	}
	if m.filter != "" {
		m.toast = "Clear the filter to reorder"
		return m
	}

	tasks := b.Columns[m.col].Tasks
	var in domain.Intent
	switch {
	case delta < 0 && m.row > 0:
		in = moveAfterIntent(b, tasks[m.row-1], tasks[m.row])
	case delta > 0 && m.row+1 < len(tasks):
		in = moveAfterIntent(b, tasks[m.row], tasks[m.row+1])
	default:
		return m
	}

	m = m.dispatch(in)
	if m.toast == "" {
		m.selectRow(m.row + delta)
	}
	return m
}

// dispatch applies one intent and rescans. A desync rescans too, so the next
// attempt works on what the file holds now.
func (m model) dispatch(in domain.Intent) model {
	if err := m.deps.Session.Dispatch(context.Background(), in); err != nil {
		m.toast = userMessage(err)
		if domain.IsKind(err, domain.KindDesync) {
			m = m.refresh()
			m.toast = userMessage(err)
		}
		return m
	}
	return m.refresh()
}

// reload pulls the file from disk. Unsaved edits win over the disk copy.
func (m model) reload() model {
	if m.deps.Document.Dirty() {
		m.toast = "File changed on disk; unsaved edits kept (s to save)"
		return m
	}
	changed, err := m.deps.Document.Reload()
	if err != nil {
		m.toast = userMessage(err)
		return m
	}
	if !changed {
		return m
	}
	return m.refresh()
}

func (m model) refresh() model {
	snap, fresh, err := m.deps.Session.Refresh(context.Background())
	if err != nil {
		m.deps.Logger.Warn("tui.refresh_failed", "err", err)
		m.toast = userMessage(err)
	}
	if fresh || len(m.snap.Boards) == 0 {
		m.setSnapshot(snap)
	}
	return m
}

func (m *model) setSnapshot(snap domain.Snapshot) {
	m.snap = snap
	if m.board >= len(snap.Boards) {
		m.board = 0
	}
	m.recomputeFilter()
	m.selectColumn(m.col)
}

// --- selection ---

func (m model) currentBoard() (domain.Board, bool) {
	if m.board < 0 || m.board >= len(m.snap.Boards) {
		return domain.Board{}, false
	}
	return m.snap.Boards[m.board], true
}

func (m model) currentColumn() (domain.Column, bool) {
	b, ok := m.currentBoard()
	if !ok || m.col < 0 || m.col >= len(b.Columns) {
		return domain.Column{}, false
	}
	return b.Columns[m.col], true
}

func (m model) selection() (domain.Board, domain.Task, bool) {
	b, ok := m.currentBoard()
	if !ok {
		return domain.Board{}, domain.Task{}, false
	}
	tasks := m.visibleTasks(m.col)
	if m.row < 0 || m.row >= len(tasks) {
		return domain.Board{}, domain.Task{}, false
	}
	return b, tasks[m.row], true
}

func (m *model) selectColumn(i int) {
	b, ok := m.currentBoard()
	if !ok || len(b.Columns) == 0 {
		m.col, m.row = 0, 0
		return
	}
	m.col = clampInt(i, 0, len(b.Columns)-1)
	m.selectRow(m.row)
}

func (m *model) selectRow(i int) {
	n := len(m.visibleTasks(m.col))
	if n == 0 {
		m.row = 0
		return
	}
	m.row = clampInt(i, 0, n-1)
}

// visibleTasks returns the tasks of column i that pass the filter, in source
// order.
func (m model) visibleTasks(i int) []domain.Task {
	b, ok := m.currentBoard()
	if !ok || i < 0 || i >= len(b.Columns) {
		return nil
	}
	tasks := b.Columns[i].Tasks
	if m.filter == "" || i >= len(m.filtered) {
		return tasks
	}
	out := make([]domain.Task, 0, len(m.filtered[i]))
	for _, idx := range m.filtered[i] {
		out = append(out, tasks[idx])
	}
	return out
}

func (m *model) recomputeFilter() {
	b, ok := m.currentBoard()
	if m.filter == "" || !ok {
		m.filtered = nil
		m.selectRow(m.row)
		return
	}

	m.filtered = make([][]int, len(b.Columns))
	for ci, c := range b.Columns {
		bodies := make([]string, len(c.Tasks))
		for i, t := range c.Tasks {
			bodies[i] = t.Body()
		}
		matches := fuzzy.Find(m.filter, bodies)
		idx := make([]int, len(matches))
		for i, match := range matches {
			idx[i] = match.Index
		}
		sort.Ints(idx)
		m.filtered[ci] = idx
	}
	m.selectRow(m.row)
}
