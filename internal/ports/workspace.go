package ports

import "github.com/kinokino2010/mdkanban/internal/domain"

// WorkspaceLocator finds the directory holding .mdkanban.yaml, starting from a
// directory or a file inside it.
type WorkspaceLocator interface {
	FindRoot(startDir string) (string, error)
}

// WorkspaceInitializer writes the files `mdkanban init` creates and reports which
// ones it wrote.
type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) ([]string, error)
}
