package tui

import (
	"log/slog"

	"github.com/kinokino2010/mdkanban/internal/domain"
	"github.com/kinokino2010/mdkanban/internal/infra/watcher"
	"github.com/kinokino2010/mdkanban/internal/ports"
	"github.com/kinokino2010/mdkanban/internal/usecase"
)

// Document is the file the view edits. Reload pulls changes made on disk.
type Document interface {
	ports.Document
	Dirty() bool
	Reload() (bool, error)
}

type Deps struct {
	Document Document
	Session  *usecase.Session
	Config   domain.Config

	// Watcher is optional. Without it the view only reloads on demand.
	Watcher *watcher.Watcher

	Logger *slog.Logger
	Debug  bool
}
