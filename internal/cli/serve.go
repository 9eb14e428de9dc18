package cli

import (
	"cmp"
	"os"

	"github.com/spf13/cobra"

	"github.com/saasfactory/archviz/pkg/server"
)

// serveCommand serves a diagram over HTTP until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags   diagramFlags
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [definition]",
		Short: "Serve the diagram and its renders over HTTP",
		Long: `Serve the blueprint or a definition file over HTTP.

Routes:
  GET /healthz            liveness probe
  GET /diagram            JSON definition
  GET /diagram.{format}   rendered artifact (svg, png, jpg, pdf, dot, json)
  GET /catalog            known resource kinds

The listen address defaults to $` + envAddr + ` or ` + server.DefaultAddr + `.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := flags.load(args)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv, err := server.New(server.Config{
				Addr:    cmp.Or(addr, os.Getenv(envAddr), server.DefaultAddr),
				Diagram: d,
				Runner:  runner,
				Logger:  c.Logger,
			})
			if err != nil {
				return err
			}

			printInfo("Serving %s on http://%s", d.Title(), srv.Addr())
			printDetail("Press Ctrl+C to stop")
			return srv.ListenAndServe(ctx)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $"+envAddr+" or "+server.DefaultAddr+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}
