package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kinokino2010/mdkanban/internal/domain"
	"github.com/kinokino2010/mdkanban/internal/infra/watcher"
)

// waitForChange blocks until the watcher reports a change. The watcher already
// debounces bursts of writes.
func waitForChange(w *watcher.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			return fileChangedMsg{op: ev.Op.String()}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}

func toggleIntent(b domain.Board, t domain.Task) domain.Intent {
	next := t
	next.Text = t.Rewrite(!t.Checked, t.Body())
	return domain.Intent{Command: domain.CommandEditTask, Board: &b, Old: &t, Task: &next}
}

func editIntent(b domain.Board, t domain.Task, body string) domain.Intent {
	next := t
	next.Text = t.Rewrite(t.Checked, body)
	return domain.Intent{Command: domain.CommandEditTask, Board: &b, Old: &t, Task: &next}
}

func addTaskIntent(b domain.Board, c domain.Column, title string) domain.Intent {
	return domain.Intent{Command: domain.CommandAddTask, Board: &b, Column: &c, Text: title}
}

func addColumnIntent(b domain.Board, title string) domain.Intent {
	return domain.Intent{Command: domain.CommandAddColumn, Board: &b, Text: title}
}

func removeIntent(b domain.Board, c domain.Column, t domain.Task) domain.Intent {
	return domain.Intent{Command: domain.CommandRemoveTask, Board: &b, Column: &c, Task: &t}
}

func moveToColumnIntent(b domain.Board, t domain.Task, c domain.Column) domain.Intent {
	return domain.Intent{Command: domain.CommandMoveTask, Board: &b, From: &t, Column: &c}
}

func moveAfterIntent(b domain.Board, from, to domain.Task) domain.Intent {
	return domain.Intent{Command: domain.CommandMoveTask, Board: &b, From: &from, To: &to}
}
