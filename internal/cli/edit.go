package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kinokino2010/mdkanban/internal/domain"
)

// editFlags are shared by the commands that mutate a board.
type editFlags struct {
	board string
	fresh bool
}

func (f *editFlags) bind(c *cobra.Command) {
	c.Flags().StringVarP(&f.board, "board", "b", "", "Board index or title (optional when the file has one board)")
	c.Flags().BoolVar(&f.fresh, "fresh", false, "Rescan the file instead of verifying against the last shown snapshot")
}

// runEdit loads the file, resolves the board and commits the intent built by
// build.
func runEdit(cmd *cobra.Command, file string, f editFlags, build func(domain.Board) (domain.Intent, error)) error {
	bc, err := loadBoard(cmd, file)
	if err != nil {
		return err
	}
	defer bc.Close()

	s, snap, err := bc.editSession(cmd.Context(), f.fresh)
	if err != nil {
		return err
	}
	board, err := resolveBoard(snap, f.board)
	if err != nil {
		return err
	}
	in, err := build(board)
	if err != nil {
		return err
	}
	if err := bc.commit(cmd.Context(), s, in); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "OK %s (%s)\n", in.Command, bc.relFile())
	return nil
}

func addCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add",
		Short: "Add a task or a column to a board",
	}
	c.AddCommand(addTaskCmd(), addColumnCmd())
	return c
}

func addTaskCmd() *cobra.Command {
	var f editFlags
	var column string

	c := &cobra.Command{
		Use:   "task FILE TEXT...",
		Short: "Append a task to a column",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args[1:], " ")
			return runEdit(cmd, args[0], f, func(b domain.Board) (domain.Intent, error) {
				col, err := resolveColumn(b, column)
				if err != nil {
					return domain.Intent{}, err
				}
				return domain.Intent{Command: domain.CommandAddTask, Board: &b, Column: &col, Text: text}, nil
			})
		},
	}

	f.bind(c)
	c.Flags().StringVarP(&column, "column", "c", "", "Column title or index (required)")
	_ = c.MarkFlagRequired("column")
	return c
}

func addColumnCmd() *cobra.Command {
	var f editFlags

	c := &cobra.Command{
		Use:   "column FILE TITLE...",
		Short: "Append a column to a board",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args[1:], " ")
			return runEdit(cmd, args[0], f, func(b domain.Board) (domain.Intent, error) {
				return domain.Intent{Command: domain.CommandAddColumn, Board: &b, Text: title}, nil
			})
		},
	}

	f.bind(c)
	return c
}

func editCmd() *cobra.Command {
	var f editFlags
	var task string
	var check, uncheck bool

	c := &cobra.Command{
		Use:   "edit FILE [TEXT...]",
		Short: "Replace the text of a task, or check/uncheck it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if check && uncheck {
				return fmt.Errorf("--check and --uncheck are exclusive")
			}
			body := strings.Join(args[1:], " ")
			if body == "" && !check && !uncheck {
				return fmt.Errorf("nothing to change (pass TEXT, --check or --uncheck)")
			}

			return runEdit(cmd, args[0], f, func(b domain.Board) (domain.Intent, error) {
				old, err := resolveTask(b, task)
				if err != nil {
					return domain.Intent{}, err
				}
				in := editIntent(b, old, body, check, uncheck)
				return in, nil
			})
		},
	}

	f.bind(c)
	c.Flags().StringVarP(&task, "task", "t", "", "Task as COLUMN/N or title (required)")
	c.Flags().BoolVar(&check, "check", false, "Mark the task done")
	c.Flags().BoolVar(&uncheck, "uncheck", false, "Mark the task not done")
	_ = c.MarkFlagRequired("task")
	return c
}

// editIntent builds an edit.task intent. An empty body keeps the current one.
func editIntent(b domain.Board, old domain.Task, body string, check, uncheck bool) domain.Intent {
	if body == "" {
		body = old.Body()
	}
	checked := old.Checked
	switch {
	case check:
		checked = true
	case uncheck:
		checked = false
	}

	next := old
	next.Text = old.Rewrite(checked, body)
	return domain.Intent{Command: domain.CommandEditTask, Board: &b, Old: &old, Task: &next}
}

func moveCmd() *cobra.Command {
	var f editFlags
	var task, toColumn, after string

	c := &cobra.Command{
		Use:   "move FILE",
		Short: "Move a task to another column or after another task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (toColumn == "") == (after == "") {
				return fmt.Errorf("exactly one of --to-column or --after is required")
			}

			return runEdit(cmd, args[0], f, func(b domain.Board) (domain.Intent, error) {
				from, err := resolveTask(b, task)
				if err != nil {
					return domain.Intent{}, err
				}
				in := domain.Intent{Command: domain.CommandMoveTask, Board: &b, From: &from}

				if after != "" {
					to, err := resolveTask(b, after)
					if err != nil {
						return domain.Intent{}, err
					}
					in.To = &to
					return in, nil
				}

				col, err := resolveColumn(b, toColumn)
				if err != nil {
					return domain.Intent{}, err
				}
				in.Column = &col
				return in, nil
			})
		},
	}

	f.bind(c)
	c.Flags().StringVarP(&task, "task", "t", "", "Task as COLUMN/N or title (required)")
	c.Flags().StringVar(&toColumn, "to-column", "", "Destination column title or index")
	c.Flags().StringVar(&after, "after", "", "Place the task right after this task")
	_ = c.MarkFlagRequired("task")
	return c
}

func removeCmd() *cobra.Command {
	var f editFlags
	var task string

	c := &cobra.Command{
		Use:   "remove FILE",
		Short: "Delete a task line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], f, func(b domain.Board) (domain.Intent, error) {
				t, err := resolveTask(b, task)
				if err != nil {
					return domain.Intent{}, err
				}
				col, _ := b.ColumnOf(t)
				return domain.Intent{Command: domain.CommandRemoveTask, Board: &b, Column: &col, Task: &t}, nil
			})
		},
	}

	f.bind(c)
	c.Flags().StringVarP(&task, "task", "t", "", "Task as COLUMN/N or title (required)")
	_ = c.MarkFlagRequired("task")
	return c
}
