package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kinokino2010/mdkanban/internal/domain"
	"github.com/kinokino2010/mdkanban/internal/usecase"
)

// applyResult is written to stdout for every input line.
type applyResult struct {
	Line    int    `json:"line"`
	Command string `json:"command,omitempty"`
	OK      bool   `json:"ok"`
	Kind    string `json:"kind,omitempty"`
	Error   string `json:"error,omitempty"`
	Version int    `json:"version"`
}

func applyCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "apply FILE",
		Short: "Apply edit intents read as JSON lines from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bc, err := loadBoard(cmd, args[0])
			if err != nil {
				return err
			}
			defer bc.Close()

			s := bc.newSession(usecase.WithStore(bc.store))
			if _, _, err := s.Refresh(cmd.Context()); err != nil {
				return err
			}

			failed, err := applyIntents(cmd, s, bc, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if bc.doc.Dirty() {
				if err := bc.doc.Save(cmd.Context()); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d intent(s) not applied", failed)
			}
			return nil
		},
	}
	return c
}

func applyIntents(cmd *cobra.Command, s *usecase.Session, bc *boardCtx, r io.Reader, w io.Writer) (int, error) {
	enc := json.NewEncoder(w)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	failed := 0
	n := 0
	for sc.Scan() {
		n++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}

		res := applyResult{Line: n}
		var in domain.Intent
		if err := json.Unmarshal([]byte(raw), &in); err != nil {
			err = &domain.OpError{Op: "cli.apply", Kind: domain.KindInvalidIntent, Err: err}
			bc.log.Warn("intent.rejected", "line", n, "err", err)
			res.fail(err)
		} else {
			res.Command = string(in.Command)
			if err := s.Dispatch(cmd.Context(), in); err != nil {
				res.fail(err)
			} else {
				res.OK = true
				if _, _, err := s.Refresh(cmd.Context()); err != nil {
					return failed, err
				}
			}
		}
		if !res.OK {
			failed++
		}
		res.Version = bc.doc.Version()

		if err := enc.Encode(res); err != nil {
			return failed, err
		}
	}
	if err := sc.Err(); err != nil {
		return failed, fmt.Errorf("read intents: %w", err)
	}
	return failed, nil
}

func (r *applyResult) fail(err error) {
	r.OK = false
	r.Error = err.Error()
	r.Kind = string(domain.KindOf(err))
}
