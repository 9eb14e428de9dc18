package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saasfactory/archviz/pkg/blueprint"
	"github.com/saasfactory/archviz/pkg/diagram"
)

// inspectCommand prints a diagram's structure as tables.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags diagramFlags
		check bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [definition]",
		Short: "Print nodes, clusters and edges of a diagram",
		Long: `Print the nodes, clusters and edges of the blueprint or a definition file, and
validate the diagram.

With --check the default blueprint is compared against its reference node and
edge tables.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if check && (len(args) > 0 || flags.usesBlueprintOnly()) {
				return fmt.Errorf("--check only applies to the default blueprint")
			}
			d, err := flags.load(args)
			if err != nil {
				return err
			}
			if err := d.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			writeDiagram(out, d)

			if check {
				return runCheck(d)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&check, "check", false, "compare the blueprint against its reference tables")
	return cmd
}

// writeDiagram writes the summary and the node, cluster and edge tables.
func writeDiagram(w io.Writer, d *diagram.Diagram) {
	fmt.Fprintln(w, StyleTitle.Render(d.Title())+" "+StyleDim.Render(
		fmt.Sprintf("(%s, %d nodes, %d edges, %d clusters)", d.Direction(), d.NodeCount(), d.EdgeCount(), d.ClusterCount())))
	fmt.Fprintln(w)

	nodes := newTable("ID", "Label", "Kind", "Cluster")
	for _, n := range d.Nodes() {
		nodes.Row(n.ID, n.Label, n.Kind.String(), orDash(d.ClusterOf(n.ID)))
	}
	writeSection(w, "Nodes", nodes)

	if d.ClusterCount() > 0 {
		clusters := newTable("ID", "Label", "Members")
		for _, cl := range d.Clusters() {
			clusters.Row(cl.ID, cl.Label, strings.Join(cl.Nodes, ", "))
		}
		writeSection(w, "Clusters", clusters)
	}

	edges := newTable("From", "", "To")
	for _, e := range d.Edges() {
		edges.Row(e.From, iconArrow, e.To)
	}
	writeSection(w, "Edges", edges)

	if isolated := d.Isolated(); len(isolated) > 0 {
		printKeyValue(w, "Unconnected", strings.Join(isolated, ", "))
	}
}

// runCheck compares d with the blueprint's reference tables.
func runCheck(d *diagram.Diagram) error {
	mismatches := blueprint.Check(d)
	if len(mismatches) == 0 {
		printSuccess("Blueprint matches its reference: %d nodes, %d edges", len(blueprint.Nodes), len(blueprint.Edges))
		return nil
	}
	for _, m := range mismatches {
		printError("%s: %s", m.What, m.Detail)
	}
	return fmt.Errorf("blueprint check failed with %d mismatches", len(mismatches))
}
