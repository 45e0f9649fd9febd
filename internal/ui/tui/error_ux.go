package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kinokino2010/mdkanban/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindNotFound:
			if strings.HasPrefix(oe.Op, "mdfile") {
				return "File not found"
			}
			if strings.HasPrefix(oe.Op, "snapshotstore") {
				return "No stored snapshot"
			}
			return "Not found"

		case domain.KindDesync:
			line := lineNumber(err.Error())
			if line != "" {
				return "File changed at line " + line + ", board reloaded; try again"
			}
			return "File changed, board reloaded; try again"

		case domain.KindInvalidIntent:
			var mf *domain.MissingFieldsError
			if errors.As(err, &mf) {
				return "Edit rejected: missing " + strings.Join(mf.Fields, ", ")
			}
			return "Edit rejected"

		case domain.KindApply:
			return "Could not update the file (see logs)"

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}
			line := lineNumber(err.Error())
			if line != "" {
				return "Invalid YAML at " + base + " line " + line
			}
			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			return "Invalid config"

		default:
			return "Unexpected error (see logs)"
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		line := lineNumber(err.Error())
		if line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}

	return "Unexpected error (see logs)"
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func lineNumber(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
