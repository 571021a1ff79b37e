package main

import (
	"fmt"

	"github.com/aretw0/animgraph/internal/presentation/graph"
	"github.com/aretw0/animgraph/internal/project"
	"github.com/aretw0/animgraph/pkg/compile"
	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <project.yaml>",
	Short: "Export the layers of a controller as Mermaid",
	Long: `Builds the project in memory and prints a Mermaid diagram of every
layer of one output. With --trees the blend trees are printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		layer, _ := cmd.Flags().GetString("layer")
		trees, _ := cmd.Flags().GetBool("trees")

		p, err := project.Load(args[0])
		if err != nil {
			return err
		}
		s := compile.NewSession(p.Container, compile.WithLogger(newLogger(cmd)))
		outputs, err := p.Build(project.DefaultRegistry())(s)
		if err != nil {
			return err
		}

		var ctrl *domain.Controller
		for _, out := range outputs {
			if output == "" || out.Name == output {
				ctrl = out.Controller
				break
			}
		}
		if ctrl == nil {
			return fmt.Errorf("output %q not found", output)
		}

		w := cmd.OutOrStdout()
		printed := 0
		for _, l := range ctrl.Layers {
			if layer != "" && l.Name != layer {
				continue
			}
			if !trees {
				fmt.Fprintf(w, "%%%% %s\n%s\n", l.Name, graph.LayerMermaid(l, nil))
				printed++
				continue
			}
			for _, st := range l.States {
				if st.Motion == nil {
					continue
				}
				fmt.Fprintf(w, "%%%% %s / %s\n%s\n", l.Name, st.Name, graph.TreeMermaid(st.Motion, ctrl.Clips))
				printed++
			}
		}
		if printed == 0 {
			return fmt.Errorf("nothing to draw")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("output", "", "Output to draw (default: the first)")
	graphCmd.Flags().String("layer", "", "Only draw this layer")
	graphCmd.Flags().Bool("trees", false, "Draw blend trees instead of state machines")
}
