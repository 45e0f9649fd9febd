package domain

// Config represents the mdkanban configuration loaded from .mdkanban.yaml.
type Config struct {
	Autosave bool
	Detect   DetectConfig
	Columns  ColumnsConfig
	Tags     TagsConfig
	Rules    RulesConfig
	Paths    PathsConfig
}

// DetectConfig controls which headers root a board.
type DetectConfig struct {
	Keyword    string
	UseKeyword bool
	Smart      bool
}

// ColumnsConfig holds the column names used for classification.
type ColumnsConfig struct {
	Todo    []string
	Done    []string
	Default string // title of the column synthesized for tasks above the first column header
}

// TagsConfig holds the start/end tag templates. "%t" marks the timestamp slot.
type TagsConfig struct {
	Start      string
	End        string
	TimeFormat string
}

// RulesConfig toggles the column-transition side effects applied on move.
type RulesConfig struct {
	CheckOnMoveToDone      bool
	SetEndOnMoveToDone     bool
	UnsetStartOnMoveToTodo bool
	UncheckOnMoveFromDone  bool
	UnsetEndOnMoveFromDone bool
	SetStartOnMoveFromTodo bool
}

type PathsConfig struct {
	StateDir string
}

// DefaultConfig provides sane defaults if .mdkanban.yaml is missing or partial.
func DefaultConfig() Config {
	return Config{
		Autosave: true,
		Detect: DetectConfig{
			Keyword:    "kanban",
			UseKeyword: true,
			Smart:      true,
		},
		Columns: ColumnsConfig{
			Todo:    []string{"To do", "Todo", "Backlog"},
			Done:    []string{"Done", "Finished"},
			Default: "To do",
		},
		Tags: TagsConfig{
			Start:      "@start(%t)",
			End:        "@end(%t)",
			TimeFormat: "YYYY-MM-DDTHH:mm",
		},
		Rules: RulesConfig{
			CheckOnMoveToDone:      true,
			SetEndOnMoveToDone:     true,
			UnsetStartOnMoveToTodo: true,
			UncheckOnMoveFromDone:  true,
			UnsetEndOnMoveFromDone: true,
			SetStartOnMoveFromTodo: true,
		},
		Paths: PathsConfig{
			StateDir: ".mdkanban",
		},
	}
}

// WorkspaceSpec describes where `mdkanban init` writes its files.
type WorkspaceSpec struct {
	Root string
}
