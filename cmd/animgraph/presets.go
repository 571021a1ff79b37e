package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/animgraph/internal/project"
	"github.com/aretw0/animgraph/pkg/compile"
	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/aretw0/animgraph/pkg/preset"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Maintain preset files",
}

var presetsConvertCmd = &cobra.Command{
	Use:   "convert <in> [out]",
	Short: "Rewrite R,G,B preset triples as H,S,V",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := preset.Load(args[0])
		if err != nil {
			return err
		}
		total := 0
		for i := range list {
			total += preset.ConvertRGBToHSV(&list[i])
		}
		out := args[0]
		if len(args) == 2 {
			out = args[1]
		}
		if err := preset.Write(out, list); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d colours converted in %d presets\n", total, len(list))
		return nil
	},
}

var presetsRecoverCmd = &cobra.Command{
	Use:   "recover <project.yaml>",
	Short: "Recover preset definitions from a compiled preset layer",
	Long: `Builds the project, reads the preset states of the given layer back into
preset definitions and prints them. With --into the recovered values replace
the parameters of every preset in that file whose name contains theirs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := buildOutput(cmd, args[0])
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("layer")
		l := ctrl.Layer(name)
		if l == nil {
			return fmt.Errorf("layer %q not found", name)
		}
		recovered := preset.FromLayer(l)

		into, _ := cmd.Flags().GetString("into")
		if into == "" {
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(preset.File{Presets: recovered})
		}
		list, err := preset.Load(into)
		if err != nil {
			return err
		}
		updated := preset.Merge(list, recovered)
		if err := preset.Write(into, list); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d presets updated in %s\n", updated, into)
		return nil
	},
}

// parameterList is the layout of a parameter list file.
type parameterList struct {
	Parameters []preset.Entry `yaml:"parameters" mapstructure:"parameters"`
}

var presetsParamsCmd = &cobra.Command{
	Use:   "params <project.yaml>",
	Short: "Append the controller's missing parameters to a parameter list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := buildOutput(cmd, args[0])
		if err != nil {
			return err
		}

		var list parameterList
		path, _ := cmd.Flags().GetString("list")
		if path != "" {
			data, err := os.ReadFile(path)
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err == nil {
				var raw map[string]any
				if err := yaml.Unmarshal(data, &raw); err != nil {
					return fmt.Errorf("failed to parse %s: %w", path, err)
				}
				if err := preset.Decode(raw, &list); err != nil {
					return err
				}
			}
		}

		list.Parameters = preset.SyncParameters(list.Parameters, ctrl.Parameters)
		data, err := yaml.Marshal(list)
		if err != nil {
			return err
		}
		if path == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		return os.WriteFile(path, data, 0o644)
	},
}

// buildOutput compiles the project in memory and returns the controller
// named by --output, or the first one.
func buildOutput(cmd *cobra.Command, path string) (*domain.Controller, error) {
	p, err := project.Load(path)
	if err != nil {
		return nil, err
	}
	outputs, err := p.Build(project.DefaultRegistry())(compile.NewSession(p.Container, compile.WithLogger(newLogger(cmd))))
	if err != nil {
		return nil, err
	}
	name, _ := cmd.Flags().GetString("output")
	for _, out := range outputs {
		if name == "" || out.Name == name {
			return out.Controller, nil
		}
	}
	return nil, fmt.Errorf("output %q not found", name)
}

func init() {
	rootCmd.AddCommand(presetsCmd)
	presetsCmd.AddCommand(presetsConvertCmd, presetsRecoverCmd, presetsParamsCmd)

	presetsCmd.PersistentFlags().String("output", "", "Project output to read (default: the first)")
	presetsRecoverCmd.Flags().String("layer", "", "Preset layer to read")
	presetsRecoverCmd.Flags().String("into", "", "Preset file to update instead of printing")
	_ = presetsRecoverCmd.MarkFlagRequired("layer")
	presetsParamsCmd.Flags().String("list", "", "Parameter list file to extend in place (printed when empty)")
}
