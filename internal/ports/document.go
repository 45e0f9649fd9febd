package ports

import (
	"context"

	"github.com/kinokino2010/mdkanban/internal/domain"
)

// LineReader gives random access to the lines of a document, without terminators.
type LineReader interface {
	LineCount() int
	LineAt(i int) (string, error)
}

// Document is the authoritative text the boards are parsed from.
type Document interface {
	LineReader

	// ID identifies the document (a path for file-backed documents).
	ID() string
	// Version increases every time the content changes.
	Version() int
	// EOL is the line terminator used by the document.
	EOL() string

	// Apply commits a batch of edits atomically: either all edits take effect or none.
	Apply(ctx context.Context, edits []domain.Edit) error
	Save(ctx context.Context) error
}
