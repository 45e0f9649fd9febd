package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kinokino2010/mdkanban/internal/domain"
	"github.com/kinokino2010/mdkanban/internal/usecase"
)

func showCmd() *cobra.Command {
	var format string
	var query string
	var noSave bool

	c := &cobra.Command{
		Use:   "show FILE",
		Short: "Detect the boards of a markdown file and print them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bc, err := loadBoard(cmd, args[0])
			if err != nil {
				return err
			}
			defer bc.Close()

			var opts []usecase.SessionOption
			if !noSave {
				opts = append(opts, usecase.WithStore(bc.store))
			}
			snap, _, err := bc.newSession(opts...).Refresh(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if query != "" {
				return printQuery(out, snap, query)
			}
			return printSnapshot(out, snap, format)
		},
	}

	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json|table")
	c.Flags().StringVar(&query, "jsonpath", "", "Print the result of a JSONPath query over the snapshot (e.g. $.boards[*].title)")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not store the snapshot under .mdkanban/snapshots/")
	return c
}

func printSnapshot(w io.Writer, snap domain.Snapshot, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snapshotView(snap))
	case "table":
		printTable(w, snap)
		return nil
	case "pretty", "":
		printPretty(w, snap)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json|table)", format)
	}
}

// snapshotView is the JSON shape of a snapshot, shared by --format json and
// --jsonpath.
func snapshotView(snap domain.Snapshot) map[string]any {
	return map[string]any{
		"snapshot_id": snap.ID,
		"file":        snap.SourceID,
		"version":     snap.Version,
		"taken_at":    snap.TakenAt,
		"boards":      snap.Boards,
	}
}

func printQuery(w io.Writer, snap domain.Snapshot, expr string) error {
	raw, err := json.Marshal(snapshotView(snap))
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}

	v, err := jsonpath.Get(expr, doc)
	if err != nil {
		return &domain.OpError{
			Op:   "cli.jsonpath",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("%s: %w", expr, err),
		}
	}

	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printPretty(w io.Writer, snap domain.Snapshot) {
	fmt.Fprintf(w, "File:     %s\n", snap.SourceID)
	fmt.Fprintf(w, "Version:  %d\n", snap.Version)
	if snap.ID != "" {
		fmt.Fprintf(w, "Snapshot: %s\n", snap.ID)
	}
	fmt.Fprintln(w)

	if len(snap.Boards) == 0 {
		fmt.Fprintln(w, "(no boards found)")
		return
	}

	for i, b := range snap.Boards {
		fmt.Fprintf(w, "%d. %s (line %d, %d task(s))\n", i+1, b.Title, b.Line+1, b.TaskCount())
		for _, c := range b.Columns {
			where := fmt.Sprintf("line %d", c.Line+1)
			if c.Synthesized {
				where = "implicit"
			}
			fmt.Fprintf(w, "   %s (%s)\n", c.Title, where)
			for j, t := range c.Tasks {
				mark := " "
				if t.Checked {
					mark = "x"
				}
				fmt.Fprintf(w, "     %d. [%s] %s\n", j+1, mark, t.Body())
			}
		}
		fmt.Fprintln(w)
	}
}

func printTable(w io.Writer, snap domain.Snapshot) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Board", "Column", "#", "Line", "Done", "Task"})
	table.SetAutoWrapText(false)

	for _, b := range snap.Boards {
		for _, c := range b.Columns {
			for j, t := range c.Tasks {
				done := ""
				if t.Checked {
					done = "x"
				}
				table.Append([]string{
					b.Title,
					c.Title,
					strconv.Itoa(j + 1),
					strconv.Itoa(t.Line + 1),
					done,
					t.Body(),
				})
			}
		}
	}
	table.Render()
}
