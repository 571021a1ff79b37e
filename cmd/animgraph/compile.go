package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/aretw0/animgraph"
	"github.com/aretw0/animgraph/internal/metrics"
	"github.com/aretw0/animgraph/internal/project"
	"github.com/aretw0/animgraph/internal/validator"
	"github.com/aretw0/animgraph/pkg/compile"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile <project.yaml>",
	Short: "Regenerate every controller of a project",
	Long: `Builds every output of the project in memory and, when the build
succeeds, publishes each controller into the container named by the project.
Slots keep their IDs; slots no output claims any more are removed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := project.Load(args[0])
		if err != nil {
			return err
		}
		build := p.Build(project.DefaultRegistry())

		if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
			return printOutputs(cmd, p.Container, build)
		}

		b, err := openBackend(cmd)
		if err != nil {
			return err
		}
		defer b.close()

		logger := newLogger(cmd)
		opts := []animgraph.Option{
			animgraph.WithLogger(logger),
			animgraph.WithLifecycleHooks(metrics.New(prometheus.NewRegistry()).Hooks(logger)),
		}
		if b.locker != nil {
			opts = append(opts, animgraph.WithLocker(b.locker))
		}
		g, err := animgraph.New(p.Container, b.store, opts...)
		if err != nil {
			return err
		}

		res, err := g.Regenerate(cmd.Context(), build)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tID\tREVISION\tBYTES")
		for _, s := range res.Slots {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", s.Key, s.ID, s.Revision, len(s.Content))
		}
		w.Flush()
		fmt.Fprintf(cmd.OutOrStdout(), "%d published, %d removed in %s\n", len(res.Slots), res.Removed, res.Duration)
		return nil
	},
}

// printOutputs builds without a store and writes each controller as JSON.
func printOutputs(cmd *cobra.Command, container string, build animgraph.BuildFunc) error {
	s := compile.NewSession(container, compile.WithLogger(newLogger(cmd)))
	outputs, err := build(s)
	if err != nil {
		return err
	}
	for _, out := range outputs {
		if out.Controller == nil {
			continue
		}
		if err := validator.Validate(out.Controller); err != nil {
			return fmt.Errorf("output %s: %w", out.Name, err)
		}
		data, err := out.Controller.Encode()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().Bool("dry-run", false, "Print the compiled controllers instead of publishing them")
}
