package fsworkspace

import "embed"

// Files under templates/ are copied into the workspace root. mdkanban.yaml is
// written as .mdkanban.yaml.
//
//go:embed templates
var templatesFS embed.FS

var dotfiles = map[string]string{
	"mdkanban.yaml": ".mdkanban.yaml",
}
