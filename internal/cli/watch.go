package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kinokino2010/mdkanban/internal/infra/watcher"
	"github.com/kinokino2010/mdkanban/internal/usecase"
)

func watchCmd() *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "watch FILE",
		Short: "Print the boards of a file again every time it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			bc, err := loadBoard(cmd, args[0])
			if err != nil {
				return err
			}
			defer bc.Close()

			w, err := watcher.New(bc.file)
			if err != nil {
				return err
			}
			defer w.Close()

			s := bc.newSession(usecase.WithStore(bc.store))
			snap, _, err := s.Refresh(ctx)
			if err != nil {
				return err
			}
			if err := printSnapshot(out, snap, format); err != nil {
				return err
			}

			for {
				select {
				case <-ctx.Done():
					return nil

				case ev, ok := <-w.Events():
					if !ok {
						return nil
					}
					bc.log.Debug("watch.event", "op", ev.Op.String())

					changed, err := bc.doc.Reload()
					if err != nil {
						bc.log.Warn("watch.reload_failed", "err", err)
						continue
					}
					if !changed {
						continue
					}

					snap, fresh, err := s.Observe(ctx, bc.doc.Version())
					if err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
						continue
					}
					if fresh {
						fmt.Fprintln(out, "---")
						if err := printSnapshot(out, snap, format); err != nil {
							return err
						}
					}

				case err, ok := <-w.Errors():
					if !ok {
						return nil
					}
					bc.log.Warn("watch.error", "err", err)
				}
			}
		},
	}

	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json|table")
	return c
}
