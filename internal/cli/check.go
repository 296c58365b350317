package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// errMarkerDrift makes check exit non-zero after its report.
var errMarkerDrift = errors.New("marker drift detected")

func newCheckCmd(e *env) *cobra.Command {
	opts := &installOptions{}
	cmd := &cobra.Command{
		Use:   "check [root]",
		Short: "Verify the catalog and the registration markers",
		Long: `Load the feature catalog and verify that every marker line the
installer splices at is present in the configuration templates of both
architectures. Exits non-zero when a marker is missing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			inst, cat, err := openInstaller(args, opts, e.logger())
			if err != nil {
				return err
			}
			if err := inst.Preflight(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "%s catalog: %d feature groups\n", symSuccess(), cat.Len())

			warnings, err := inst.Check()
			if err != nil {
				return err
			}
			if len(warnings) == 0 {
				_, _ = fmt.Fprintf(out, "%s all markers present\n", symSuccess())
				return nil
			}
			for _, w := range warnings {
				_, _ = fmt.Fprintf(out, "%s %s\n", symWarning(), w)
			}
			return fmt.Errorf("%w: %d missing", errMarkerDrift, len(warnings))
		},
	}
	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "Feature catalog file (.yaml, .yml or .toml)")
	return cmd
}
