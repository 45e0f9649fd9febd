// Package parse rebuilds boards from document lines.
//
// The grammar is line-oriented: a header is one or more '#' followed by
// whitespace, a task is a "- [ ]" or "- [x]" checkbox line, and everything else
// is ignored.
package parse

import (
	"regexp"
	"strings"

	"github.com/kinokino2010/mdkanban/internal/domain"
)

var (
	reHeader = regexp.MustCompile(`^(#+)\s+(.*)$`)
	reTask   = regexp.MustCompile(`^(\s*)- \[(x| )\](.*)$`)
)

type LineKind int

const (
	LinePlain LineKind = iota
	LineHeader
	LineTask
)

// Line is the decoded form of one document line. Only the field matching Kind is set.
type Line struct {
	Kind   LineKind
	Header domain.Header
	Task   domain.Task
}

// DecodeLine classifies text found at line n.
func DecodeLine(n int, text string) Line {
	if strings.HasPrefix(text, "#") {
		m := reHeader.FindStringSubmatch(text)
		if m == nil {
			return Line{Kind: LinePlain}
		}
		return Line{
			Kind: LineHeader,
			Header: domain.Header{
				Line:  n,
				Level: len(m[1]),
				Title: strings.TrimSpace(m[2]),
			},
		}
	}

	m := reTask.FindStringSubmatch(text)
	if m == nil {
		return Line{Kind: LinePlain}
	}

	title, tags := splitTags(m[3])
	return Line{
		Kind: LineTask,
		Task: domain.Task{
			Line:    n,
			Text:    text,
			Indent:  len(m[1]),
			Checked: m[2] == "x",
			Title:   title,
			Tags:    tags,
		},
	}
}

// splitTags separates @/# tokens from title words. Order is kept for both.
func splitTags(body string) (string, []string) {
	tags := []string{}
	var words []string
	for _, tok := range strings.Fields(body) {
		if tok[0] == '@' || tok[0] == '#' {
			tags = append(tags, tok)
			continue
		}
		words = append(words, tok)
	}
	return strings.Join(words, " "), tags
}
