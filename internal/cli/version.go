package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MethorZ/mezzio-hexagonal-skeleton/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "skeleton-installer %s\n", version.GetFullVersion())
		},
	}
}
