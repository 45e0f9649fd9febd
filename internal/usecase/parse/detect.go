package parse

import (
	"strings"

	"github.com/kinokino2010/mdkanban/internal/domain"
	"github.com/kinokino2010/mdkanban/internal/ports"
	"github.com/kinokino2010/mdkanban/internal/usecase/rules"
)

// Detector finds every board in a document in one forward pass.
type Detector struct {
	cfg        domain.Config
	classifier rules.Classifier
}

func NewDetector(cfg domain.Config) *Detector {
	return &Detector{
		cfg:        cfg,
		classifier: rules.NewClassifier(cfg.Columns),
	}
}

// Detect returns the boards of r in discovery order.
//
// Keyword mode roots a board at any header whose title contains the keyword
// (case-insensitive). Otherwise, in smart mode, a header titled like a TODO or
// DONE column roots a board at its nearest shallower ancestor header. Scanning
// resumes after the region of each board, so boards never overlap.
func (d *Detector) Detect(r ports.LineReader, sourceID string) ([]domain.Board, error) {
	boards := []domain.Board{}
	var headers []domain.Header

	keyword := strings.ToLower(strings.TrimSpace(d.cfg.Detect.Keyword))
	useKeyword := d.cfg.Detect.UseKeyword && keyword != ""

	n := r.LineCount()
	for i := 0; i < n; i++ {
		text, err := r.LineAt(i)
		if err != nil {
			return nil, readErr(sourceID, i, err)
		}

		l := DecodeLine(i, text)
		if l.Kind != LineHeader {
			continue
		}
		h := l.Header
		headers = append(headers, h)

		root := -1
		if useKeyword && strings.Contains(strings.ToLower(h.Title), keyword) {
			root = h.Line
		} else if d.cfg.Detect.Smart && d.classifier.Classify(h.Title) != domain.ColumnNone {
			root = nearestAncestor(headers)
		}
		if root < 0 {
			continue
		}

		b, last, err := Assemble(r, root, sourceID, d.cfg.Columns.Default)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
		// Later smart matches must not backtrack above a board already built.
		headers = headers[:0]
		if last > i {
			i = last
		}
	}

	return boards, nil
}

// nearestAncestor walks back from the last header to the closest one with a
// smaller level. It returns -1 if there is none.
func nearestAncestor(headers []domain.Header) int {
	h := headers[len(headers)-1]
	for j := len(headers) - 2; j >= 0; j-- {
		if headers[j].Level < h.Level {
			return headers[j].Line
		}
	}
	return -1
}
