package domain

import "time"

// Snapshot is the immutable result of one detection pass over a document.
type Snapshot struct {
	ID       string    `json:"id"`
	SourceID string    `json:"source_id"`
	Version  int       `json:"version"`
	TakenAt  time.Time `json:"taken_at"`
	Boards   []Board   `json:"boards"`
}
