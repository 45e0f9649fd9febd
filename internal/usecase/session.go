package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kinokino2010/mdkanban/internal/domain"
	"github.com/kinokino2010/mdkanban/internal/ports"
	"github.com/kinokino2010/mdkanban/internal/usecase/boardsync"
	"github.com/kinokino2010/mdkanban/internal/usecase/parse"
)

// Session owns the current snapshot of one document and routes edit intents to
// the sync engine. It is not safe for concurrent use.
type Session struct {
	doc      ports.Document
	cfg      domain.Config
	detector *parse.Detector
	engine   *boardsync.Engine
	store    ports.SnapshotStore
	log      *slog.Logger
	now      func() time.Time
	newID    func() string

	snap    domain.Snapshot
	hasSnap bool
	scanned bool
	seen    int
}

type SessionOption func(*Session)

// WithStore persists every new snapshot.
func WithStore(store ports.SnapshotStore) SessionOption {
	return func(s *Session) { s.store = store }
}

func WithLogger(log *slog.Logger) SessionOption {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithNow is useful for tests. It also drives the timestamps of move rules.
func WithNow(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDs replaces the snapshot id generator.
func WithIDs(newID func() string) SessionOption {
	return func(s *Session) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithBaseline seeds the session with a snapshot taken earlier, so intents can
// be verified against what was last shown rather than a fresh scan.
func WithBaseline(snap domain.Snapshot) SessionOption {
	return func(s *Session) {
		s.snap = snap
		s.hasSnap = true
	}
}

func NewSession(doc ports.Document, cfg domain.Config, opts ...SessionOption) *Session {
	s := &Session{
		doc:      doc,
		cfg:      cfg,
		detector: parse.NewDetector(cfg),
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = boardsync.New(doc, cfg, boardsync.WithNow(s.now))
	return s
}

// Current returns the latest snapshot, if any was taken or seeded.
func (s *Session) Current() (domain.Snapshot, bool) {
	return s.snap, s.hasSnap
}

// Refresh rescans the document if its version moved since the last scan.
func (s *Session) Refresh(ctx context.Context) (domain.Snapshot, bool, error) {
	return s.Observe(ctx, s.doc.Version())
}

// Observe handles a change notification carrying version. Versions at or below
// the last scanned one are ignored.
func (s *Session) Observe(ctx context.Context, version int) (domain.Snapshot, bool, error) {
	if s.scanned && version <= s.seen {
		s.log.Debug("session.refresh.skipped", "source", s.doc.ID(), "version", version, "seen", s.seen)
		return s.snap, false, nil
	}
	if err := ctx.Err(); err != nil {
		return s.snap, false, err
	}

	current := s.doc.Version()
	boards, err := s.detector.Detect(s.doc, s.doc.ID())
	if err != nil {
		s.log.Error("session.refresh.failed", "source", s.doc.ID(), "err", err)
		return s.snap, false, err
	}

	snap := domain.Snapshot{
		ID:       s.newID(),
		SourceID: s.doc.ID(),
		Version:  current,
		TakenAt:  s.now().UTC(),
		Boards:   boards,
	}
	s.snap = snap
	s.hasSnap = true
	s.scanned = true
	s.seen = max(version, current)

	s.log.Info("session.refresh",
		"source", snap.SourceID,
		"version", snap.Version,
		"boards", len(boards),
		"snapshot_id", snap.ID,
	)

	if s.store != nil {
		if _, err := s.store.SaveSnapshot(snap); err != nil {
			s.log.Warn("snapshot.save_failed", "source", snap.SourceID, "err", err)
			return snap, true, err
		}
	}
	return snap, true, nil
}

// Dispatch validates and applies one intent. Rejected and desynced intents
// leave the document unchanged. With autosave on, a successful edit is saved.
func (s *Session) Dispatch(ctx context.Context, in domain.Intent) error {
	log := s.log.With("command", string(in.Command), "source", s.doc.ID())

	if err := in.Validate(); err != nil {
		log.Warn("intent.rejected", "err", err)
		return err
	}

	if err := s.route(ctx, in); err != nil {
		switch kind := domain.KindOf(err); kind {
		case domain.KindDesync:
			log.Warn("intent.desync", "err", err)
		case domain.KindInvalidIntent, domain.KindInvalidInput:
			log.Warn("intent.rejected", "kind", string(kind), "err", err)
		default:
			log.Error("intent.apply_failed", "kind", string(kind), "err", err)
		}
		return err
	}

	if s.cfg.Autosave {
		if err := s.doc.Save(ctx); err != nil {
			log.Error("document.save_failed", "err", err)
			return err
		}
	}

	log.Info("intent.applied", "version", s.doc.Version(), "saved", s.cfg.Autosave)
	return nil
}

func (s *Session) route(ctx context.Context, in domain.Intent) error {
	switch in.Command {
	case domain.CommandAddTask:
		return s.engine.AddTask(ctx, *in.Board, *in.Column, in.Text)
	case domain.CommandAddColumn:
		return s.engine.AddColumn(ctx, *in.Board, in.Text)
	case domain.CommandEditTask:
		return s.engine.EditTask(ctx, *in.Old, in.Task.Text)
	case domain.CommandMoveTask:
		return s.engine.MoveTask(ctx, *in.Board, boardsync.Move{
			From:   *in.From,
			To:     in.To,
			Column: in.Column,
		})
	case domain.CommandRemoveTask:
		return s.engine.RemoveTask(ctx, *in.Task)
	}
	return nil
}
