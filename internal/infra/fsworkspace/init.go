package fsworkspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kinokino2010/mdkanban/internal/domain"
	"github.com/kinokino2010/mdkanban/internal/ports"
)

type Initializer struct {
	stateDir string
}

func NewInitializer() *Initializer {
	return &Initializer{stateDir: domain.DefaultConfig().Paths.StateDir}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

// Init writes the config file and a sample board into spec.Root. Existing files
// are kept unless force is set.
func (i *Initializer) Init(spec domain.WorkspaceSpec, force bool) ([]string, error) {
	root := filepath.Clean(spec.Root)

	if err := os.MkdirAll(filepath.Join(root, i.stateDir, "logs"), 0o755); err != nil {
		return nil, initErr(root, err)
	}
	if err := ensureGitignore(root, i.stateDir); err != nil {
		return nil, initErr(root, err)
	}

	var written []string
	err := fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, "templates/")
		if name, ok := dotfiles[rel]; ok {
			rel = name
		}
		dst := filepath.Join(root, rel)

		if !force {
			if _, statErr := os.Stat(dst); statErr == nil {
				return nil
			}
		}

		b, err := fs.ReadFile(templatesFS, p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(dst, b, 0o644); err != nil {
			return err
		}
		written = append(written, rel)
		return nil
	})
	if err != nil {
		return written, initErr(root, err)
	}
	return written, nil
}

func initErr(root string, err error) error {
	return &domain.OpError{
		Op:   "fsworkspace.init",
		Kind: domain.KindExecution,
		Path: root,
		Err:  err,
	}
}

func ensureGitignore(root, stateDir string) error {
	const header = "# mdkanban"
	entries := []string{
		strings.TrimSuffix(stateDir, "/") + "/",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			present[trimmed] = true
		}
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
