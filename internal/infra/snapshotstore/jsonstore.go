package snapshotstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/kinokino2010/mdkanban/internal/domain"
	"github.com/kinokino2010/mdkanban/internal/ports"
)

const defaultDirName = "snapshots"

// JSONStore keeps the latest snapshot of each document as
// <state_dir>/snapshots/<slug>.json, overwriting the previous one.
type JSONStore struct {
	rootDir    string
	dir        string
	writeIndex bool
	now        func() time.Time
}

type Option func(*JSONStore)

// WithIndex appends one line per saved snapshot to snapshots/index.jsonl.
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	stateDir := cfg.Paths.StateDir
	if strings.TrimSpace(stateDir) == "" {
		stateDir = domain.DefaultConfig().Paths.StateDir
	}

	s := &JSONStore{
		rootDir: root,
		dir:     filepath.Join(root, stateDir, defaultDirName),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.SnapshotStore = (*JSONStore)(nil)

func (s *JSONStore) SaveSnapshot(snap domain.Snapshot) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "snapshotstore.mkdir",
			Kind: domain.KindExecution,
			Path: s.dir,
			Err:  err,
		}
	}

	if snap.TakenAt.IsZero() {
		snap.TakenAt = s.now()
	}
	snap.TakenAt = snap.TakenAt.UTC()

	path := s.pathFor(snap.SourceID)
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "snapshotstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if err := atomic.WriteFile(path, strings.NewReader(string(b))); err != nil {
		return "", &domain.OpError{
			Op:   "snapshotstore.write",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(filepath.Base(path), snap)
	}

	return snap.ID, nil
}

func (s *JSONStore) LoadSnapshot(sourceID string) (domain.Snapshot, error) {
	path := s.pathFor(sourceID)
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, os.ErrNotExist) {
			kind = domain.KindNotFound
			err = fmt.Errorf("no snapshot for %s: %w", sourceID, domain.ErrNotFound)
		}
		return domain.Snapshot{}, &domain.OpError{
			Op:   "snapshotstore.load",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return domain.Snapshot{}, &domain.OpError{
			Op:   "snapshotstore.unmarshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	if snap.SourceID != sourceID {
		return domain.Snapshot{}, &domain.OpError{
			Op:   "snapshotstore.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  fmt.Errorf("snapshot belongs to %s: %w", snap.SourceID, domain.ErrNotFound),
		}
	}
	return snap, nil
}

func (s *JSONStore) pathFor(sourceID string) string {
	rel := sourceID
	if r, err := filepath.Rel(s.rootDir, sourceID); err == nil && !strings.HasPrefix(r, "..") {
		rel = r
	}
	slug := slugify(rel)
	if slug == "" {
		slug = "document"
	}
	return filepath.Join(s.dir, slug+".json")
}

func (s *JSONStore) appendIndex(filename string, snap domain.Snapshot) error {
	type idx struct {
		ID      string    `json:"id"`
		File    string    `json:"file"`
		Source  string    `json:"source"`
		Version int       `json:"version"`
		Boards  int       `json:"boards"`
		TakenAt time.Time `json:"taken_at"`
	}
	line, err := json.Marshal(idx{
		ID:      snap.ID,
		File:    filename,
		Source:  snap.SourceID,
		Version: snap.Version,
		Boards:  len(snap.Boards),
		TakenAt: snap.TakenAt,
	})
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(s.dir, "index.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
