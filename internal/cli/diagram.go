package cli

import (
	"github.com/spf13/cobra"

	"github.com/saasfactory/archviz/pkg/blueprint"
	"github.com/saasfactory/archviz/pkg/diagram"
	pkgio "github.com/saasfactory/archviz/pkg/io"
)

// diagramFlags selects the diagram a command works on: the built-in
// blueprint with its variant toggles, or a definition file argument.
type diagramFlags struct {
	clusters  bool   // add per-service container clusters
	secrets   bool   // add Key Vault secret edges
	direction string // override the rank direction
}

func (f *diagramFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.clusters, "clusters", false, "add container clusters to the blueprint")
	cmd.Flags().BoolVar(&f.secrets, "secrets", false, "connect workloads to Key Vault in the blueprint")
	cmd.Flags().StringVarP(&f.direction, "direction", "d", "", "rank direction: LR (default), RL, TB, BT")
	_ = cmd.RegisterFlagCompletionFunc("direction", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"LR", "RL", "TB", "BT"}, cobra.ShellCompDirectiveNoFileComp
	})
}

// usesBlueprintOnly reports whether a blueprint-only flag was set.
func (f *diagramFlags) usesBlueprintOnly() bool {
	return f.clusters || f.secrets
}

// load builds the blueprint, or imports args[0] when given.
func (f *diagramFlags) load(args []string) (*diagram.Diagram, error) {
	var dir diagram.Direction
	if f.direction != "" {
		var err error
		if dir, err = diagram.ParseDirection(f.direction); err != nil {
			return nil, err
		}
	}

	if len(args) == 0 {
		var opts []blueprint.Option
		if f.clusters {
			opts = append(opts, blueprint.WithContainerClusters())
		}
		if f.secrets {
			opts = append(opts, blueprint.WithSecrets())
		}
		if dir != "" {
			opts = append(opts, blueprint.WithDirection(dir))
		}
		return blueprint.SaaSB2B(opts...)
	}

	if f.usesBlueprintOnly() {
		printWarning("--clusters and --secrets only apply to the built-in blueprint")
	}
	d, err := pkgio.Import(args[0])
	if err != nil {
		return nil, err
	}
	if dir != "" {
		d.SetDirection(dir)
	}
	return d, nil
}
