package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/uiregistry/pkg/errors"
	"github.com/matzehuels/uiregistry/pkg/graph"
)

// Graph output formats.
const (
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatJSON = "json"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		format       string
		output       string
		packages     bool
		dependentsOf string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the component dependency graph",
		Long: `Render how components depend on each other and, with --packages, on npm
packages. Output is Graphviz DOT, SVG (rendered in-process) or node-link JSON.`,
		Example: `  uiregistry graph --packages -f svg -o registry.svg
  uiregistry graph --dependents-of motion`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			reg, err := requireRegistry(ctx, cfg.Artifact.URL)
			if err != nil {
				return err
			}

			g := graph.FromRegistry(reg, graph.Options{Packages: packages || dependentsOf != ""})
			if dependentsOf != "" {
				for _, id := range g.Dependents(dependentsOf) {
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				return nil
			}

			var data []byte
			switch format {
			case formatDOT:
				data = []byte(graph.ToDOT(g))
			case formatJSON:
				if data, err = graph.MarshalGraph(g); err != nil {
					return err
				}
			case formatSVG:
				sp := startSpinner(ctx, cmd.ErrOrStderr(), "Rendering graph...")
				data, err = graph.RenderSVG(ctx, graph.ToDOT(g))
				sp.stop()
				if err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "render svg")
				}
			default:
				return errors.New(errors.ErrCodeInvalidFormat, "unknown graph format %q (available: dot, svg, json)", format)
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Graph with %d nodes and %d edges", len(g.Nodes), len(g.Edges))
			printFile(output)
			return nil
		},
	}

	addArtifactFlag(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", formatDOT, "output format (dot, svg, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&packages, "packages", false, "include npm package nodes")
	cmd.Flags().StringVar(&dependentsOf, "dependents-of", "", "list components depending on a component or npm package")
	return cmd
}
