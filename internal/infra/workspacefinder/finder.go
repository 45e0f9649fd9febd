package workspacefinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/kinokino2010/mdkanban/internal/domain"
	"github.com/kinokino2010/mdkanban/internal/ports"
)

// ConfigFileName is the name of the per-workspace configuration file.
const ConfigFileName = ".mdkanban.yaml"

// Finder locates the directory holding .mdkanban.yaml by searching upward.
type Finder struct {
	ConfigFile string
}

func NewFinder() *Finder {
	return &Finder{ConfigFile: ConfigFileName}
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

// FindRoot accepts a directory or a file path. For a file, the search starts at
// its directory.
func (f *Finder) FindRoot(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	if info, statErr := os.Stat(abs); statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	cur := filepath.Clean(abs)
	for {
		if _, err := os.Stat(filepath.Join(cur, f.ConfigFile)); err == nil {
			return cur, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", &domain.OpError{
				Op:   "workspacefinder.findroot",
				Kind: domain.KindNotFound,
				Path: abs,
				Err:  domain.ErrNotFound,
			}
		}
		cur = parent
	}
}

// Resolve returns the workspace root and its configuration for a markdown file.
// Without a config file anywhere above it, the file's directory and the
// defaults are used.
func (f *Finder) Resolve(file string) (string, domain.Config, error) {
	root, err := f.FindRoot(file)
	if err != nil {
		if !domain.IsKind(err, domain.KindNotFound) {
			return "", domain.Config{}, err
		}
		abs, absErr := filepath.Abs(file)
		if absErr != nil {
			return "", domain.Config{}, &domain.OpError{Op: "workspacefinder.resolve", Kind: domain.KindExecution, Path: file, Err: absErr}
		}
		if info, statErr := os.Stat(abs); statErr == nil && info.IsDir() {
			return abs, domain.DefaultConfig(), nil
		}
		return filepath.Dir(abs), domain.DefaultConfig(), nil
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		return root, cfg, err
	}
	return root, cfg, nil
}
