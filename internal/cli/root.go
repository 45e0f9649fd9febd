package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/kinokino2010/mdkanban/internal/infra/watcher"
	"github.com/kinokino2010/mdkanban/internal/ui/tui"
	"github.com/kinokino2010/mdkanban/internal/usecase"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "mdkanban [FILE]",
		Short:        "mdkanban: kanban boards kept inside markdown files",
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			file := "TODO.md"
			if len(args) == 1 {
				file = args[0]
			}

			bc, err := loadBoard(c, file)
			if err != nil {
				return err
			}
			defer bc.Close()

			w, err := watcher.New(bc.file)
			if err != nil {
				bc.log.Warn("watch.unavailable", "err", err)
			} else {
				defer w.Close()
			}

			deps := tui.Deps{
				Document: bc.doc,
				Session:  bc.newSession(usecase.WithStore(bc.store)),
				Config:   bc.cfg,
				Watcher:  w,
				Logger:   bc.log,
				Debug:    debug,
			}
			return tui.Run(deps)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .mdkanban/logs/mdkanban.log")

	cmd.AddCommand(
		showCmd(),
		addCmd(),
		editCmd(),
		moveCmd(),
		removeCmd(),
		applyCmd(),
		watchCmd(),
		initCmd(),
		versionCmd(),
	)
	return cmd
}
