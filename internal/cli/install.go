package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/catalog"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/cli/wizard"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/config"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/core/installer"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/ui"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/pkg/models"
)

// installOptions holds the flags of the install command.
type installOptions struct {
	arch           string
	with           []string
	nonInteractive bool
	keepInstaller  bool
	catalogPath    string
}

func newInstallCmd(e *env) *cobra.Command {
	opts := &installOptions{}
	cmd := &cobra.Command{
		Use:   "install [root]",
		Short: "Run the skeleton installer",
		Long: `Install the skeleton found in root (default: the current directory or
the nearest parent containing the installer directory).

Usage patterns:
  skeleton-installer install                     Ask every question
  skeleton-installer install --arch layered      Layered, default features
  skeleton-installer install --with cors,logging Flat, exactly these features
  skeleton-installer install --non-interactive   Defaults for everything

Passing --arch or --with implies --non-interactive. An empty --with=
selects no optional features.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, args, e, opts)
		},
	}
	bindInstallFlags(cmd, opts)
	return cmd
}

func bindInstallFlags(cmd *cobra.Command, opts *installOptions) {
	cmd.Flags().StringVar(&opts.arch, "arch", "", "Architecture: flat or layered")
	cmd.Flags().StringSliceVar(&opts.with, "with", nil, "Comma-separated feature keys to install")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Answer every question with its default or the --arch/--with flags")
	cmd.Flags().BoolVar(&opts.keepInstaller, "keep-installer", false, "Leave the installer directory in place")
	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "Feature catalog file (.yaml, .yml or .toml)")
}

func runInstall(cmd *cobra.Command, args []string, e *env, opts *installOptions) error {
	out := cmd.OutOrStdout()
	logger := e.logger()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.arch != "" && !models.Architecture(opts.arch).IsValid() {
		return fmt.Errorf("invalid --arch value %q: must be one of: flat, layered", opts.arch)
	}

	inst, cat, err := openInstaller(args, opts, logger)
	if err != nil {
		return err
	}
	if err := inst.Preflight(); err != nil {
		return err
	}

	preset := opts.nonInteractive || cmd.Flags().Changed("arch") || cmd.Flags().Changed("with")
	var features []string
	if cmd.Flags().Changed("with") {
		features = normalizeKeys(opts.with)
		if _, err := cat.Select(features); err != nil {
			return fmt.Errorf("invalid --with value: %w", err)
		}
	}

	_, _ = fmt.Fprintln(out, cliPrimary.Bold(true).Render("Mezzio skeleton installer"))
	_, _ = fmt.Fprintln(out, cliMuted.Render(inst.Root()))
	_, _ = fmt.Fprintln(out)

	prompter := choosePrompter(cmd, e, preset, opts.arch, features)
	sel, err := promptSelection(ctx, cat, prompter, out)
	if errors.Is(err, wizard.ErrCancelled) {
		_, _ = fmt.Fprintln(out, cliWarn.Render("Installation cancelled."))
		return nil
	}
	if err != nil {
		return err
	}

	theme := ui.NewTheme(ui.ThemeConfig{})
	bar := ui.NewProgress(theme, e.headless, out).Start("Installing", inst.StageCount(sel.Architecture))

	res, err := inst.Install(ctx, sel, bar)
	bar.Done()
	if err != nil {
		var stageErr *installer.StageError
		if errors.As(err, &stageErr) {
			_, _ = fmt.Fprintln(out, renderWarningCard("Installation stopped",
				cliMuted.Render("Stage: ")+stageErr.Stage.Title(),
				cliMuted.Render("Fix the cause and run the installer again; completed edits were kept."),
			))
		}
		return err
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, renderSuccessCard("Skeleton installed", summaryDetails(res)...))

	if e.headless.IsOutputTerminal() {
		_, _ = fmt.Fprint(out, renderMarkdown(nextSteps(res, inst.Root(), inst.Layout())))
	}
	return nil
}

// openInstaller resolves the root, layout and catalog and builds the installer.
func openInstaller(args []string, opts *installOptions, logger *slog.Logger) (*installer.Installer, *catalog.Catalog, error) {
	start := "."
	if len(args) > 0 {
		start = args[0]
	}

	root, err := installer.FindRootOrCurrent(start, config.NewDefaultLayout().InstallerDir)
	if err != nil {
		return nil, nil, err
	}
	layout, err := config.Load(root, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("load installer config: %w", err)
	}
	cat, source, err := catalog.Resolve(opts.catalogPath, layout.InstallerPath(root))
	if err != nil {
		return nil, nil, fmt.Errorf("load feature catalog: %w", err)
	}
	logger.Debug("feature catalog loaded", "source", source, "features", cat.Len())

	inst, err := installer.New(installer.Options{
		Root:          root,
		Layout:        layout,
		Catalog:       cat,
		KeepInstaller: opts.keepInstaller,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	return inst, cat, nil
}

// choosePrompter picks the preset prompter for flag-driven runs, the huh
// form on a terminal and the line prompter otherwise.
func choosePrompter(cmd *cobra.Command, e *env, preset bool, arch string, features []string) wizard.Prompter {
	switch {
	case preset:
		return wizard.NewPresetPrompter(arch, features)
	case e.headless.IsHeadless():
		return wizard.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	default:
		return wizard.NewFormPrompter()
	}
}

// promptSelection runs the wizard until it finishes or ctx is cancelled.
// A blocked console read cannot be interrupted, so on cancellation the
// prompt goroutine is abandoned.
func promptSelection(ctx context.Context, cat *catalog.Catalog, p wizard.Prompter, out io.Writer) (models.Selection, error) {
	if ctx.Err() != nil {
		return models.Selection{}, wizard.ErrCancelled
	}

	type answer struct {
		sel models.Selection
		err error
	}
	done := make(chan answer, 1)
	go func() {
		sel, err := wizard.Run(cat, p, out)
		done <- answer{sel: sel, err: err}
	}()

	select {
	case <-ctx.Done():
		return models.Selection{}, wizard.ErrCancelled
	case a := <-done:
		return a.sel, a.err
	}
}

// normalizeKeys trims the keys and drops empty ones. The result is never nil.
func normalizeKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func summaryDetails(res *installer.Result) []string {
	features := "none"
	if len(res.Selection.Features) > 0 {
		features = strings.Join(res.Selection.Features, ", ")
	}
	installerState := "removed"
	if !res.Removed {
		installerState = "kept"
	}

	details := []string{
		renderKeyValueLines([]kvPair{
			{"Architecture", res.Selection.Architecture.Label()},
			{"Features", features},
			{"Files", fmt.Sprintf("%d written", res.Files())},
			{"Installer", installerState},
		}),
	}
	for _, w := range res.Warnings() {
		details = append(details, cliWarn.Render("Warning: "+w))
	}
	return details
}

// nextSteps returns the post-install instructions as markdown.
func nextSteps(res *installer.Result, root string, l *config.Layout) string {
	var b strings.Builder
	b.WriteString("## Next steps\n\n")
	fmt.Fprintf(&b, "1. Install the dependencies: `cd %s && composer install`\n", l.Path(root, l.BackendDir))
	fmt.Fprintf(&b, "2. Read `%s` for the development workflow.\n", l.Readme)
	if res.Selection.Architecture == models.ArchLayered {
		fmt.Fprintf(&b, "3. Read `%s` for the module and layer rules.\n", l.ArchitectureDoc)
	}
	if len(res.Warnings()) > 0 {
		b.WriteString("\n> Some registrations could not be applied automatically. ")
		fmt.Fprintf(&b, "Add the missing lines to `%s` and `%s` by hand.\n", l.ConfigFile, l.PipelineFile)
	}
	return b.String()
}

// renderMarkdown renders md for the terminal, falling back to the raw text.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return md
	}
	rendered, err := r.Render(md)
	if err != nil {
		return md
	}
	return rendered
}
