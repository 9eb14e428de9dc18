package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saasfactory/archviz/pkg/pipeline"
	"github.com/saasfactory/archviz/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	diagramFlags
	output   string // output file, directory, or base path for several formats
	formats  string // comma-separated output formats
	detailed bool   // show resource kinds under labels
	noCache  bool   // disable the artifact cache
	refresh  bool   // re-render even when cached
}

// renderCommand creates the render command.
//
// With no arguments or flags it writes saas_b2b_system.png to the working
// directory.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [definition]",
		Short: "Render the blueprint or a definition file",
		Long: `Render the built-in "SaaS B2B system" blueprint, or the diagram described by a
JSON, YAML or TOML definition file.

Output goes to a file named after the diagram title unless -o is given.`,
		Example: `  archviz render
  archviz render --clusters --secrets -f svg,pdf
  archviz render arch.yaml -o docs/arch.png -d TB`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args, opts)
		},
	}

	opts.diagramFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, directory, or base path (multiple formats)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): "+formatNames()+" (comma-separated, default png)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show resource kinds under node labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when artifacts are cached")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, args []string, opts renderOpts) error {
	ctx := cmd.Context()

	formats, err := render.ParseFormats(opts.formats)
	if err != nil {
		return err
	}
	d, err := opts.load(args)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", d.Title()))
	spinner.Start()
	res, err := runner.Render(ctx, d, pipeline.Options{
		Formats:  formats,
		Detailed: opts.detailed,
		Refresh:  opts.refresh,
		Logger:   c.Logger,
	})
	spinner.Stop()
	if err != nil {
		return err
	}

	paths, err := pipeline.WriteArtifacts(res, formats, opts.output)
	if err != nil {
		return err
	}
	prog.done("render complete")

	printSuccess("Rendered %s", d.Title())
	for _, p := range paths {
		printFile(p)
	}
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.Stats.ClusterCount, len(res.CacheInfo.Hits) == len(imageFormats(formats)) && len(res.CacheInfo.Hits) > 0)
	if len(args) == 0 {
		printNextStep("Export as a definition to edit", "archviz export -o arch.yaml")
	}
	return nil
}

// imageFormats filters formats produced by Graphviz.
func imageFormats(formats []render.Format) []render.Format {
	var out []render.Format
	for _, f := range formats {
		if f.Image() {
			out = append(out, f)
		}
	}
	return out
}

func formatNames() string {
	names := make([]string, len(render.Formats))
	for i, f := range render.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
