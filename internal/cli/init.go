package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kinokino2010/mdkanban/internal/infra/fsworkspace"
	"github.com/kinokino2010/mdkanban/internal/usecase"
)

func initCmd() *cobra.Command {
	var path string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Write .mdkanban.yaml and a sample board into a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := resolveWorkspaceRoot(path)
			if err != nil {
				return err
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			written, err := uc.Execute(root, force)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Workspace: %s\n", root)
			if len(written) == 0 {
				fmt.Fprintln(out, "(nothing written, files already exist; use --force to overwrite)")
				return nil
			}
			for _, f := range written {
				fmt.Fprintf(out, "  + %s\n", f)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&path, "path", "p", "", "Directory to initialize (default: current directory)")
	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing files")
	return c
}
