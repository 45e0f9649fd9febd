package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/kinokino2010/mdkanban/internal/domain"
)

const (
	minColumnWidth = 18
	maxColumnWidth = 40
)

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(0, 1)

	var s strings.Builder
	s.WriteString(m.header())
	s.WriteString("\n")

	b, ok := m.currentBoard()
	if !ok {
		s.WriteString(m.theme.Card.Render(
			"No boards found.\n\n" +
				"Add a header containing \"" + m.deps.Config.Detect.Keyword + "\",\n" +
				"or column headers named like " + strings.Join(m.deps.Config.Columns.Todo, " / ") + ".",
		))
		s.WriteString("\n")
		s.WriteString(m.footer())
		return wrap.Render(s.String())
	}

	if len(m.snap.Boards) > 1 {
		s.WriteString(m.tabs())
		s.WriteString("\n")
	}

	width := m.columnWidth(len(b.Columns))
	views := make([]string, 0, len(b.Columns))
	for i, c := range b.Columns {
		views = append(views, m.renderColumn(i, c, m.visibleTasks(i), width))
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, views...))
	s.WriteString("\n")
	s.WriteString(m.footer())

	return wrap.Render(s.String())
}

func (m model) header() string {
	name := "mdkanban"
	if m.deps.Document != nil {
		name += "  " + filepath.Base(m.deps.Document.ID())
		if m.deps.Document.Dirty() {
			name += " ●"
		}
	}
	sub := fmt.Sprintf("version %d", m.snap.Version)
	if m.filter != "" {
		sub += "  filter: " + m.filter
	}
	return m.theme.Title.Render(name) + "  " + m.theme.Subtitle.Render(sub)
}

func (m model) tabs() string {
	parts := make([]string, 0, len(m.snap.Boards))
	for i, b := range m.snap.Boards {
		style := m.theme.Tab
		if i == m.board {
			style = m.theme.ActiveTab
		}
		parts = append(parts, style.Render(b.Title))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m model) footer() string {
	var s strings.Builder

	switch m.mode {
	case modeInput, modeFilter:
		s.WriteString(m.input.View())
		s.WriteString("\n")
	case modeConfirmDelete:
		s.WriteString(m.theme.Toast.Render("Delete this task? (y/n)"))
		s.WriteString("\n")
	}

	if m.toast != "" {
		s.WriteString(m.theme.Toast.Render(m.toast))
		s.WriteString("\n")
	}
	s.WriteString(m.help.View(m.keys))
	return s.String()
}

func (m model) columnWidth(n int) int {
	if n == 0 || m.width == 0 {
		return maxColumnWidth - 10
	}
	return clampInt((m.width-2)/n, minColumnWidth, maxColumnWidth)
}

func (m model) renderColumn(i int, c domain.Column, tasks []domain.Task, width int) string {
	inner := width - 4

	var s strings.Builder
	title := fmt.Sprintf("%s (%d)", c.Title, len(c.Tasks))
	s.WriteString(m.theme.ColumnTitle.Render(clampString(title, inner)))
	s.WriteString("\n\n")

	if len(tasks) == 0 {
		s.WriteString(m.theme.Subtitle.Render("(empty)"))
	}
	for j, t := range tasks {
		s.WriteString(m.renderTask(t, i == m.col && j == m.row, inner))
		s.WriteString("\n")
	}

	style := m.theme.Column
	if i == m.col {
		style = m.theme.ActiveColumn
	}
	return style.Width(width - 2).Render(strings.TrimRight(s.String(), "\n"))
}

func (m model) renderTask(t domain.Task, selected bool, width int) string {
	mark := "[ ]"
	if t.Checked {
		mark = "[x]"
	}
	line := clampString(mark+" "+t.Body(), width)

	switch {
	case selected:
		return m.theme.SelectedTask.Render(line)
	case t.Checked:
		return m.theme.DoneTask.Render(line)
	default:
		return m.theme.Task.Render(line)
	}
}

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen-1 {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
