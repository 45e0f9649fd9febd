package tui

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
)

// maxPanics is how many panics in a row the view survives before quitting.
const maxPanics = 3

// safeModel keeps a panic in Update or View from tearing down the terminal.
type safeModel struct {
	m      model
	log    *slog.Logger
	panics int
}

func wrapSafe(m model, log *slog.Logger) safeModel {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return safeModel{m: m, log: log}
}

func (s safeModel) Init() tea.Cmd {
	return s.m.Init()
}

func (s safeModel) Update(msg tea.Msg) (tm tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			s.logPanic("tui.update", r, "msg", fmt.Sprintf("%T", msg))
			s.panics++

			s.m.mode = modeBoard
			s.m.input.Blur()
			s.m.quitArmed = false
			s.m.toast = "Unexpected error (see logs)"

			tm, cmd = s, nil
			if s.panics >= maxPanics {
				cmd = tea.Quit
			}
		}
	}()

	next, c := s.m.Update(msg)
	switch v := next.(type) {
	case model:
		s.m = v
	case safeModel:
		s = v
	}
	s.panics = 0

	return s, c
}

func (s safeModel) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.logPanic("tui.view", r)
			out = "Unexpected error (see logs)"
		}
	}()
	return s.m.View()
}

func (s safeModel) logPanic(where string, r any, attrs ...any) {
	args := append([]any{
		"where", where,
		"panic", fmt.Sprint(r),
		"stack", string(debug.Stack()),
	}, attrs...)
	s.log.Error("panic.recovered", args...)
}

var _ tea.Model = (*safeModel)(nil)
