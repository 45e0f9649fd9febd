package ports

import "github.com/kinokino2010/mdkanban/internal/domain"

// SnapshotStore persists the latest snapshot per document so later edits can be
// verified against what the user last saw.
type SnapshotStore interface {
	SaveSnapshot(snap domain.Snapshot) (id string, err error)
	LoadSnapshot(sourceID string) (domain.Snapshot, error)
}
