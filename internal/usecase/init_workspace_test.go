package usecase

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/kinokino2010/mdkanban/internal/domain"
	"github.com/kinokino2010/mdkanban/internal/ports"
)

type fakeInitializer struct {
	gotSpec  domain.WorkspaceSpec
	gotForce bool
	written  []string
	err      error
}

var _ ports.WorkspaceInitializer = (*fakeInitializer)(nil)

func (f *fakeInitializer) Init(spec domain.WorkspaceSpec, force bool) ([]string, error) {
	f.gotSpec = spec
	f.gotForce = force
	return f.written, f.err
}

func TestInitWorkspace_PassesAbsoluteRoot(t *testing.T) {
	fi := &fakeInitializer{written: []string{".mdkanban.yaml"}}

	written, err := NewInitWorkspace(fi).Execute(".", true)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !filepath.IsAbs(fi.gotSpec.Root) || !fi.gotForce {
		t.Fatalf("expected absolute root and force, got %+v force=%v", fi.gotSpec, fi.gotForce)
	}
	if len(written) != 1 || written[0] != ".mdkanban.yaml" {
		t.Fatalf("expected written files passed through, got %v", written)
	}
}

func TestInitWorkspace_PropagatesError(t *testing.T) {
	boom := errors.New("disk full")
	fi := &fakeInitializer{err: boom}

	if _, err := NewInitWorkspace(fi).Execute(t.TempDir(), false); !errors.Is(err, boom) {
		t.Fatalf("expected initializer error, got %v", err)
	}
}
