// Package cli wires the skeleton-installer command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/ui"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/pkg/version"
)

// env carries the process-level collaborators commands share. Tests swap
// the terminal detection and the log destination.
type env struct {
	verbose  bool
	headless *ui.HeadlessManager
	logOut   io.Writer
}

func newEnv() *env {
	return &env{
		headless: ui.NewHeadlessManager(),
		logOut:   os.Stderr,
	}
}

// logger returns a text logger on the log destination. Only warnings and
// errors are shown unless --verbose was given.
func (e *env) logger() *slog.Logger {
	level := slog.LevelWarn
	if e.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(e.logOut, &slog.HandlerOptions{Level: level}))
}

// Execute builds the command tree and runs it. Errors are printed to
// stderr; the caller only maps them to an exit code.
func Execute(ctx context.Context) error {
	cmd := NewRootCmd()
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", symError(), err)
	}
	return err
}

// NewRootCmd returns the root command. Run without a subcommand it
// behaves like "install".
func NewRootCmd() *cobra.Command {
	return newRootCommand(newEnv())
}

func newRootCommand(e *env) *cobra.Command {
	opts := &installOptions{}

	root := &cobra.Command{
		Use:   "skeleton-installer [root]",
		Short: "Install the Mezzio hexagonal skeleton",
		Long: `skeleton-installer prepares a freshly cloned Mezzio skeleton.

It asks for the architecture (flat or layered) and the optional feature
groups, merges their composer packages, copies the matching templates,
registers providers and middleware and finally removes itself.

Running it without a subcommand is the same as "skeleton-installer install".`,
		Version:       version.GetVersion(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, args, e, opts)
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("skeleton-installer %s\n", version.GetVersion()))
	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "Log debug output to stderr")
	bindInstallFlags(root, opts)

	root.AddCommand(
		newInstallCmd(e),
		newCatalogCmd(e),
		newCheckCmd(e),
		newVersionCmd(),
	)
	return root
}
