package usecase

import (
	"path/filepath"

	"github.com/kinokino2010/mdkanban/internal/domain"
	"github.com/kinokino2010/mdkanban/internal/ports"
)

// InitWorkspace writes the default configuration into a directory.
type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

// Execute returns the files that were written, relative to root.
func (uc *InitWorkspace) Execute(root string, force bool) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &domain.OpError{Op: "usecase.init_workspace", Kind: domain.KindInvalidInput, Path: root, Err: err}
	}
	return uc.initializer.Init(domain.WorkspaceSpec{Root: abs}, force)
}
