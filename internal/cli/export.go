package cli

import (
	"github.com/spf13/cobra"

	pkgio "github.com/saasfactory/archviz/pkg/io"
)

// exportCommand writes a diagram as a definition file.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		flags    diagramFlags
		output   string
		encoding string
	)

	cmd := &cobra.Command{
		Use:   "export [definition]",
		Short: "Write the blueprint as a JSON, YAML or TOML definition",
		Long: `Write the blueprint, or a converted definition file, as an editable definition.

The encoding follows the -o extension; without -o the definition goes to
stdout in the --encoding given (json by default).`,
		Example: `  archviz export -o arch.yaml
  archviz export --clusters --encoding toml
  archviz export arch.json -o arch.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := flags.load(args)
			if err != nil {
				return err
			}

			if output != "" {
				if err := pkgio.Export(d, output); err != nil {
					return err
				}
				printSuccess("Exported %s", d.Title())
				printFile(output)
				return nil
			}

			enc, err := pkgio.ParseEncoding(encoding)
			if err != nil {
				return err
			}
			return pkgio.Write(cmd.OutOrStdout(), d, enc)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json, .yaml, .yml or .toml)")
	cmd.Flags().StringVarP(&encoding, "encoding", "e", "json", "encoding for stdout: json, yaml, toml")
	return cmd
}
