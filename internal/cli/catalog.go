package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/catalog"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/config"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/core/installer"
)

func newCatalogCmd(e *env) *cobra.Command {
	var catalogPath string
	cmd := &cobra.Command{
		Use:   "catalog [root]",
		Short: "List the optional feature groups",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, source, err := resolveCatalog(args, catalogPath, e)
			if err != nil {
				return err
			}
			printCatalog(cmd.OutOrStdout(), cat, source)
			return nil
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Feature catalog file (.yaml, .yml or .toml)")
	return cmd
}

// resolveCatalog loads the catalog a run in the given root would use.
// Without an installer directory the built-in catalog is returned.
func resolveCatalog(args []string, explicit string, e *env) (*catalog.Catalog, string, error) {
	start := "."
	if len(args) > 0 {
		start = args[0]
	}
	root, err := installer.FindRootOrCurrent(start, config.NewDefaultLayout().InstallerDir)
	if err != nil {
		return nil, "", err
	}
	layout, err := config.Load(root, e.logger())
	if err != nil {
		return nil, "", fmt.Errorf("load installer config: %w", err)
	}
	cat, source, err := catalog.Resolve(explicit, layout.InstallerPath(root))
	if err != nil {
		return nil, "", fmt.Errorf("load feature catalog: %w", err)
	}
	return cat, source, nil
}

func printCatalog(out io.Writer, cat *catalog.Catalog, source string) {
	_, _ = fmt.Fprintf(out, "%s %s\n", cliPrimary.Bold(true).Render("Feature catalog"), cliMuted.Render("("+source+")"))

	for _, label := range cat.GroupLabels() {
		_, _ = fmt.Fprintf(out, "\n%s\n", cliPrimary.Render(catalog.GroupTitle(label)))
		for _, g := range cat.InGroup(label) {
			def := "no"
			if g.Default {
				def = "yes"
			}
			_, _ = fmt.Fprintf(out, "  %s %s\n", g.Key, cliMuted.Render("(default: "+def+")"))

			pairs := []kvPair{{"prompt", g.Prompt}}
			if len(g.Packages) > 0 {
				pkgs := make([]string, 0, len(g.Packages))
				for _, p := range g.Packages {
					pkgs = append(pkgs, p.Name+" "+p.Version)
				}
				pairs = append(pairs, kvPair{g.RequireSection(), strings.Join(pkgs, ", ")})
			}
			if g.ConfigTemplate != "" {
				pairs = append(pairs, kvPair{"config", g.ConfigTemplate})
			}
			if g.HasProvider() {
				pairs = append(pairs, kvPair{"provider", g.Provider.String()})
			}
			if g.HasMiddleware() {
				pairs = append(pairs, kvPair{"middleware", g.Middleware.String() + " @ " + string(g.Position)})
			}
			for _, line := range strings.Split(renderKeyValueLines(pairs), "\n") {
				_, _ = fmt.Fprintf(out, "    %s\n", line)
			}
		}
	}
}
