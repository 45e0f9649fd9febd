package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kinokino2010/mdkanban/internal/buildinfo"
	"github.com/kinokino2010/mdkanban/internal/domain"
)

func versionCmd() *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:          "version",
		Short:        "Print version information",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := buildinfo.Get()
			switch format {
			case "", "text":
				fmt.Fprintln(cmd.OutOrStdout(), info.String())
				return nil
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			default:
				return &domain.OpError{Op: "cli.version", Kind: domain.KindInvalidInput, Err: fmt.Errorf("unknown format %q", format)}
			}
		},
	}
	c.Flags().StringVar(&format, "format", "text", "Output format: text|json")
	return c
}
