package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raveheart1/shiplog/internal/version"
)

// newVersionCmd reports build information injected via ldflags.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print shiplog version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "shiplog %s (commit %s, built %s)\n",
				version.Version, version.Commit, version.BuildDate)
		},
	}
}
