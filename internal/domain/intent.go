package domain

import (
	"errors"
	"fmt"
	"strings"
)

// IntentCommand names one board edit message.
type IntentCommand string

const (
	CommandAddTask    IntentCommand = "add.task"
	CommandAddColumn  IntentCommand = "add.column"
	CommandEditTask   IntentCommand = "edit.task"
	CommandMoveTask   IntentCommand = "move.task"
	CommandRemoveTask IntentCommand = "remove.task"
)

// Intent is an edit request expressed against nodes of the latest snapshot.
// Which fields are required depends on Command; see Validate.
type Intent struct {
	Command IntentCommand `json:"command"`
	Board   *Board        `json:"kanban,omitempty"`
	Column  *Column       `json:"column,omitempty"`
	Task    *Task         `json:"task,omitempty"`
	Old     *Task         `json:"old,omitempty"`
	From    *Task         `json:"from,omitempty"`
	To      *Task         `json:"to,omitempty"`
	Text    string        `json:"str,omitempty"`
}

// Validate checks that the fields required by the command are present.
func (in Intent) Validate() error {
	var missing []string
	need := func(ok bool, name string) {
		if !ok {
			missing = append(missing, name)
		}
	}

	switch in.Command {
	case CommandAddTask:
		need(in.Board != nil, "kanban")
		need(in.Column != nil, "column")
		need(in.Text != "", "str")
	case CommandAddColumn:
		need(in.Board != nil, "kanban")
		need(in.Text != "", "str")
	case CommandEditTask:
		need(in.Board != nil, "kanban")
		need(in.Task != nil, "task")
		need(in.Old != nil, "old")
	case CommandMoveTask:
		need(in.Board != nil, "kanban")
		need(in.From != nil, "from")
		need(in.To != nil || in.Column != nil, "to|column")
	case CommandRemoveTask:
		need(in.Board != nil, "kanban")
		need(in.Column != nil, "column")
		need(in.Task != nil, "task")
	default:
		return &OpError{
			Op:   "intent.validate",
			Kind: KindInvalidIntent,
			Err:  errors.New("unknown command " + string(in.Command)),
		}
	}

	if len(missing) > 0 {
		return &OpError{
			Op:   "intent.validate",
			Kind: KindInvalidIntent,
			Err:  &MissingFieldsError{Command: in.Command, Fields: missing},
		}
	}

	// New text becomes exactly one document line.
	text := in.Text
	if in.Command == CommandEditTask {
		text = in.Task.Text
	}
	if strings.ContainsAny(text, "\r\n") {
		return &OpError{
			Op:   "intent.validate",
			Kind: KindInvalidIntent,
			Err:  fmt.Errorf("%s: text must be a single line: %w", in.Command, ErrMultiline),
		}
	}
	return nil
}

// ErrMultiline rejects intent text that would span more than one line.
var ErrMultiline = errors.New("line break in text")

// MissingFieldsError lists the absent fields of a rejected intent.
type MissingFieldsError struct {
	Command IntentCommand
	Fields  []string
}

func (e *MissingFieldsError) Error() string {
	s := string(e.Command) + ": missing "
	for i, f := range e.Fields {
		if i > 0 {
			s += ", "
		}
		s += f
	}
	return s
}
