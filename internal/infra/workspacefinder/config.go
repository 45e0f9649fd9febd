package workspacefinder

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kinokino2010/mdkanban/internal/domain"
)

// LoadConfig loads .mdkanban.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	k := y.Kanban
	setBool(&cfg.Autosave, k.Autosave)

	if k.Detect.Keyword != nil {
		cfg.Detect.Keyword = *k.Detect.Keyword
	}
	setBool(&cfg.Detect.UseKeyword, k.Detect.UseKeyword)
	setBool(&cfg.Detect.Smart, k.Detect.Smart)

	if k.Columns.Todo != nil {
		cfg.Columns.Todo = splitNames(k.Columns.Todo)
	}
	if k.Columns.Done != nil {
		cfg.Columns.Done = splitNames(k.Columns.Done)
	}
	if strings.TrimSpace(k.Columns.Default) != "" {
		cfg.Columns.Default = strings.TrimSpace(k.Columns.Default)
	}

	if k.Tags.Start != nil {
		cfg.Tags.Start = *k.Tags.Start
	}
	if k.Tags.End != nil {
		cfg.Tags.End = *k.Tags.End
	}
	if k.Tags.TimeFormat != "" {
		cfg.Tags.TimeFormat = k.Tags.TimeFormat
	}

	setBool(&cfg.Rules.CheckOnMoveToDone, k.Rules.CheckOnMoveToDone)
	setBool(&cfg.Rules.SetEndOnMoveToDone, k.Rules.SetEndOnMoveToDone)
	setBool(&cfg.Rules.UnsetStartOnMoveToTodo, k.Rules.UnsetStartOnMoveToTodo)
	setBool(&cfg.Rules.UncheckOnMoveFromDone, k.Rules.UncheckOnMoveFromDone)
	setBool(&cfg.Rules.UnsetEndOnMoveFromDone, k.Rules.UnsetEndOnMoveFromDone)
	setBool(&cfg.Rules.SetStartOnMoveFromTodo, k.Rules.SetStartOnMoveFromTodo)

	if k.Paths.StateDir != "" {
		cfg.Paths.StateDir = k.Paths.StateDir
	}

	return cfg, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// splitNames accepts both YAML lists and comma-separated entries.
func splitNames(in []string) []string {
	out := []string{}
	for _, v := range in {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

type yamlConfig struct {
	Kanban struct {
		Autosave *bool `yaml:"autosave"`

		Detect struct {
			Keyword    *string `yaml:"keyword"`
			UseKeyword *bool   `yaml:"use_keyword"`
			Smart      *bool   `yaml:"smart"`
		} `yaml:"detect"`

		Columns struct {
			Todo    stringList `yaml:"todo"`
			Done    stringList `yaml:"done"`
			Default string     `yaml:"default"`
		} `yaml:"columns"`

		Tags struct {
			Start      *string `yaml:"start"`
			End        *string `yaml:"end"`
			TimeFormat string  `yaml:"time_format"`
		} `yaml:"tags"`

		Rules struct {
			CheckOnMoveToDone      *bool `yaml:"check_on_move_to_done"`
			SetEndOnMoveToDone     *bool `yaml:"set_end_on_move_to_done"`
			UnsetStartOnMoveToTodo *bool `yaml:"unset_start_on_move_to_todo"`
			UncheckOnMoveFromDone  *bool `yaml:"uncheck_on_move_from_done"`
			UnsetEndOnMoveFromDone *bool `yaml:"unset_end_on_move_from_done"`
			SetStartOnMoveFromTodo *bool `yaml:"set_start_on_move_from_todo"`
		} `yaml:"rules"`

		Paths struct {
			StateDir string `yaml:"state_dir"`
		} `yaml:"paths"`
	} `yaml:"mdkanban"`
}

// stringList decodes either a scalar ("To do, Backlog") or a sequence.
type stringList []string

func (s *stringList) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		*s = stringList{n.Value}
		return nil
	}
	var list []string
	if err := n.Decode(&list); err != nil {
		return err
	}
	*s = list
	return nil
}
