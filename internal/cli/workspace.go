package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kinokino2010/mdkanban/internal/domain"
	"github.com/kinokino2010/mdkanban/internal/infra/logger"
	"github.com/kinokino2010/mdkanban/internal/infra/mdfile"
	"github.com/kinokino2010/mdkanban/internal/infra/snapshotstore"
	"github.com/kinokino2010/mdkanban/internal/infra/workspacefinder"
	"github.com/kinokino2010/mdkanban/internal/ports"
	"github.com/kinokino2010/mdkanban/internal/usecase"
)

// boardCtx bundles what every file command needs: the document, the config
// resolved for it and the snapshot store of its workspace.
type boardCtx struct {
	file  string
	root  string
	cfg   domain.Config
	doc   *mdfile.Document
	store ports.SnapshotStore
	log   *slog.Logger

	cleanup func() error
}

func loadBoard(cmd *cobra.Command, file string) (*boardCtx, error) {
	p := strings.TrimSpace(file)
	if p == "" {
		return nil, fmt.Errorf("markdown file is required")
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, fmt.Errorf("invalid file path: %w", err)
	}

	root, cfg, err := workspacefinder.NewFinder().Resolve(abs)
	if err != nil {
		return nil, err
	}

	cleanup, _ := logger.Setup(logger.Config{
		Root:     root,
		StateDir: cfg.Paths.StateDir,
		Debug:    debugFlag(cmd),
	})

	doc, err := mdfile.Open(abs)
	if err != nil {
		if cleanup != nil {
			_ = cleanup()
		}
		return nil, err
	}

	return &boardCtx{
		file:    abs,
		root:    root,
		cfg:     cfg,
		doc:     doc,
		store:   snapshotstore.NewJSONStore(root, cfg, snapshotstore.WithIndex(true)),
		log:     logger.L().With("file", abs),
		cleanup: cleanup,
	}, nil
}

func (b *boardCtx) Close() {
	if b.cleanup != nil {
		_ = b.cleanup()
	}
}

func (b *boardCtx) newSession(opts ...usecase.SessionOption) *usecase.Session {
	base := []usecase.SessionOption{usecase.WithLogger(b.log)}
	return usecase.NewSession(b.doc, b.cfg, append(base, opts...)...)
}

// editSession returns a session whose current snapshot is what the user last
// saw: the stored snapshot of the file, or a fresh scan when there is none or
// fresh is set.
func (b *boardCtx) editSession(ctx context.Context, fresh bool) (*usecase.Session, domain.Snapshot, error) {
	if !fresh {
		snap, err := b.store.LoadSnapshot(b.doc.ID())
		switch {
		case err == nil:
			b.log.Debug("cli.baseline", "snapshot_id", snap.ID, "version", snap.Version)
			s := b.newSession(usecase.WithStore(b.store), usecase.WithBaseline(snap))
			return s, snap, nil
		case !domain.IsKind(err, domain.KindNotFound):
			b.log.Warn("cli.baseline.failed", "err", err)
		}
	}

	s := b.newSession(usecase.WithStore(b.store))
	snap, _, err := s.Refresh(ctx)
	if err != nil {
		return nil, domain.Snapshot{}, err
	}
	return s, snap, nil
}

// commit dispatches in, saves the document and records the new snapshot.
func (b *boardCtx) commit(ctx context.Context, s *usecase.Session, in domain.Intent) error {
	if err := s.Dispatch(ctx, in); err != nil {
		if domain.IsKind(err, domain.KindDesync) {
			return fmt.Errorf("%w (tip: run `mdkanban show %s` and retry)", err, b.relFile())
		}
		return err
	}
	if b.doc.Dirty() {
		if err := b.doc.Save(ctx); err != nil {
			return err
		}
	}
	_, _, err := s.Refresh(ctx)
	return err
}

func (b *boardCtx) relFile() string {
	if rel, err := filepath.Rel(b.root, b.file); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return b.file
}

func debugFlag(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	v, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return false
	}
	return v
}

func resolveWorkspaceRoot(pathFlag string) (string, error) {
	p := strings.TrimSpace(pathFlag)
	if p == "" {
		p = "."
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("invalid workspace path: %w", err)
	}
	return abs, nil
}

var errNoBoards = errors.New("no boards in document")
