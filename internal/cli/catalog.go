package cli

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/saasfactory/archviz/pkg/catalog"
)

// catalogCommand lists the resource kinds definitions may use.
func (c *CLI) catalogCommand() *cobra.Command {
	var (
		provider    string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the resource kinds available to diagrams",
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := catalog.All()
			if provider != "" {
				kinds = catalog.ByProvider(catalog.Provider(provider))
				if len(kinds) == 0 {
					return fmt.Errorf("unknown provider %q (known: %v)", provider, catalog.Providers())
				}
			}

			if !interactive {
				writeCatalog(cmd.OutOrStdout(), kinds)
				return nil
			}

			final, err := tea.NewProgram(NewCatalogModel(kinds), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(CatalogModel); ok && m.Selected != nil {
				fmt.Fprintln(cmd.OutOrStdout(), m.Selected.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&provider, "provider", "p", "", "only list kinds of one provider")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse kinds interactively and print the chosen one")
	_ = cmd.RegisterFlagCompletionFunc("provider", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, p := range catalog.Providers() {
			names = append(names, string(p))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func writeCatalog(w io.Writer, kinds []catalog.Kind) {
	t := newTable("Kind", "Provider", "Category", "Shape", "Color")
	for _, k := range kinds {
		t.Row(k.String(), string(k.Provider), k.Category, k.Shape, k.Color)
	}
	writeSection(w, fmt.Sprintf("Resource kinds (%d)", len(kinds)), t)
}
