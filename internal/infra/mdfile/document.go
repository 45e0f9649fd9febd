// Package mdfile is a markdown file held in memory and edited in line/character
// positions.
package mdfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/kinokino2010/mdkanban/internal/domain"
	"github.com/kinokino2010/mdkanban/internal/ports"
)

// Document is safe for concurrent use.
type Document struct {
	mu sync.RWMutex

	path    string
	content string
	lines   []string
	starts  []int
	eol     string
	version int
	dirty   bool
}

var _ ports.Document = (*Document)(nil)

// Open reads the file at path.
func Open(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, os.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return nil, &domain.OpError{
			Op:   "mdfile.open",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}

	d := &Document{path: path, version: 1}
	d.load(string(b))
	return d, nil
}

// FromString builds a document that is not backed by a file. Save fails on it.
func FromString(id, content string) *Document {
	d := &Document{path: id, version: 1}
	d.load(content)
	return d
}

func (d *Document) load(content string) {
	d.content = content
	d.eol = detectEOL(content)

	segs := strings.Split(content, "\n")
	d.lines = make([]string, len(segs))
	d.starts = make([]int, len(segs))
	off := 0
	for i, s := range segs {
		d.starts[i] = off
		off += len(s) + 1
		if i < len(segs)-1 {
			s = strings.TrimSuffix(s, "\r")
		}
		d.lines[i] = s
	}
}

func detectEOL(content string) string {
	i := strings.IndexByte(content, '\n')
	if i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

func (d *Document) ID() string {
	return d.path
}

func (d *Document) Version() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

func (d *Document) EOL() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.eol
}

func (d *Document) LineCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.lines)
}

func (d *Document) LineAt(i int) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if i < 0 || i >= len(d.lines) {
		return "", &domain.OpError{
			Op:   "mdfile.line_at",
			Kind: domain.KindNotFound,
			Path: d.path,
			Err:  fmt.Errorf("line %d outside 0..%d: %w", i, len(d.lines)-1, domain.ErrNotFound),
		}
	}
	return d.lines[i], nil
}

// Content returns the full current text.
func (d *Document) Content() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.content
}

// Dirty reports whether the document has applied edits that are not saved yet.
func (d *Document) Dirty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.dirty
}

type span struct {
	start, end int
	text       string
	insert     bool
	idx        int
}

// Apply commits edits in one step. Positions refer to the content before the
// batch. At equal offsets inserts go first, in batch order. Overlapping ranges
// reject the whole batch.
func (d *Document) Apply(ctx context.Context, edits []domain.Edit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(edits) == 0 {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	spans := make([]span, 0, len(edits))
	for i, e := range edits {
		s, err := d.toSpan(i, e)
		if err != nil {
			return &domain.OpError{Op: "mdfile.apply", Kind: domain.KindInvalidInput, Path: d.path, Err: err}
		}
		spans = append(spans, s)
	}

	sort.SliceStable(spans, func(a, b int) bool {
		if spans[a].start != spans[b].start {
			return spans[a].start < spans[b].start
		}
		return spans[a].insert && !spans[b].insert
	})

	needsEOL := d.content != "" && !strings.HasSuffix(d.content, "\n")

	var out strings.Builder
	out.Grow(len(d.content) + 64)
	cursor := 0
	for _, s := range spans {
		if s.start < cursor {
			return &domain.OpError{
				Op:   "mdfile.apply",
				Kind: domain.KindInvalidInput,
				Path: d.path,
				Err:  fmt.Errorf("edit %d overlaps a previous edit", s.idx),
			}
		}
		out.WriteString(d.content[cursor:s.start])
		text := s.text
		if needsEOL && s.insert && s.start == len(d.content) {
			text = d.eol + text
			needsEOL = false
		}
		out.WriteString(text)
		cursor = s.end
	}
	out.WriteString(d.content[cursor:])

	d.load(out.String())
	d.version++
	d.dirty = true
	return nil
}

func (d *Document) toSpan(idx int, e domain.Edit) (span, error) {
	start, err := d.offset(e.Range.Start)
	if err != nil {
		return span{}, fmt.Errorf("edit %d: %w", idx, err)
	}

	switch e.Kind {
	case domain.EditInsert:
		return span{start: start, end: start, text: e.Text, insert: true, idx: idx}, nil
	case domain.EditDelete, domain.EditReplace:
		end, err := d.offset(e.Range.End)
		if err != nil {
			return span{}, fmt.Errorf("edit %d: %w", idx, err)
		}
		if end < start {
			return span{}, fmt.Errorf("edit %d: range ends before it starts", idx)
		}
		text := ""
		if e.Kind == domain.EditReplace {
			text = e.Text
		}
		return span{start: start, end: end, text: text, idx: idx}, nil
	default:
		return span{}, fmt.Errorf("edit %d: unknown kind %q", idx, e.Kind)
	}
}

// offset maps a position to a byte offset. The line just past the last one is
// allowed and means end of content.
func (d *Document) offset(p domain.Position) (int, error) {
	if p.Line == len(d.lines) && p.Character == 0 {
		return len(d.content), nil
	}
	if p.Line < 0 || p.Line >= len(d.lines) {
		return 0, fmt.Errorf("line %d out of range", p.Line)
	}
	if p.Character < 0 || p.Character > len(d.lines[p.Line]) {
		return 0, fmt.Errorf("character %d out of range on line %d", p.Character, p.Line)
	}
	return d.starts[p.Line] + p.Character, nil
}

// Save writes the content back to the file atomically.
func (d *Document) Save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := atomic.WriteFile(d.path, strings.NewReader(d.content)); err != nil {
		return &domain.OpError{
			Op:   "mdfile.save",
			Kind: domain.KindExecution,
			Path: d.path,
			Err:  err,
		}
	}
	d.dirty = false
	return nil
}

// Reload re-reads the file and reports whether its content changed. The
// version only moves when it did.
func (d *Document) Reload() (bool, error) {
	b, err := os.ReadFile(d.path)
	if err != nil {
		return false, &domain.OpError{
			Op:   "mdfile.reload",
			Kind: domain.KindExecution,
			Path: d.path,
			Err:  err,
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if string(b) == d.content {
		return false, nil
	}
	d.load(string(b))
	d.version++
	d.dirty = false
	return true, nil
}
