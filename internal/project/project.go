// Package project reads YAML project files describing the controllers of a
// container and turns them into a regeneration build.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/animgraph"
	"github.com/aretw0/animgraph/pkg/compile"
	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/aretw0/animgraph/pkg/preset"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultWeight is the Direct root weight parameter used when an output names none.
const DefaultWeight = "DirectBlendWeight"

// Project is the top-level layout of a project file.
type Project struct {
	Container string   `yaml:"container" mapstructure:"container"`
	Outputs   []Output `yaml:"outputs" mapstructure:"outputs"`

	// Dir is the directory of the project file.
	Dir string `yaml:"-" mapstructure:"-"`
}

// Output declares one controller.
type Output struct {
	Name         string           `yaml:"name" mapstructure:"name"`
	Kind         string           `yaml:"kind" mapstructure:"kind"`
	DirectWeight string           `yaml:"direct_weight" mapstructure:"direct_weight"`
	Components   []map[string]any `yaml:"components" mapstructure:"components"`
}

// Load reads a project file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project: %w", err)
	}
	p, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes project YAML. dir resolves relative file references.
func Parse(data []byte, dir string) (*Project, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse project yaml: %w", err)
	}

	var p Project
	if err := decode(raw, &p); err != nil {
		return nil, err
	}
	if p.Container == "" {
		return nil, fmt.Errorf("project has no container")
	}
	seen := make(map[string]bool)
	for i, out := range p.Outputs {
		if out.Name == "" {
			return nil, fmt.Errorf("output %d has no name", i)
		}
		if seen[out.Name] {
			return nil, fmt.Errorf("duplicate output %s", out.Name)
		}
		seen[out.Name] = true
	}
	p.Dir = dir
	return &p, nil
}

// decode maps generic input onto out, rejecting unknown keys.
func decode(input any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(preset.KindHook),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("failed to decode: %w", err)
	}
	return nil
}

// Build returns the regeneration build of the project.
//
// Outputs share the session of the pass, so later controllers also list
// the parameters declared by earlier ones. Tree components of an output
// are combined under one Direct root layer, placed before its other layers.
func (p *Project) Build(reg *Registry) animgraph.BuildFunc {
	return func(s *compile.Session) ([]animgraph.Output, error) {
		outputs := make([]animgraph.Output, 0, len(p.Outputs))
		for _, out := range p.Outputs {
			a := &Assembly{Dir: p.Dir}
			for i, spec := range out.Components {
				if err := reg.Build(s, spec, a); err != nil {
					return nil, fmt.Errorf("output %s component %d: %w", out.Name, i, err)
				}
			}

			var layers []*domain.Layer
			if len(a.Trees) > 0 {
				name := out.DirectWeight
				if name == "" {
					name = DefaultWeight
				}
				weight := s.Float(name)
				s.Override(weight, 1)
				root := s.DirectTree(out.Name + " Root")
				for _, t := range a.Trees {
					root.WithWeighted(t, weight)
				}
				layers = append(layers, s.TreeLayer(out.Name+" Trees", root))
			}
			layers = append(layers, a.Layers...)

			ctrl, err := s.Controller(layers...)
			if err != nil {
				return nil, fmt.Errorf("output %s: %w", out.Name, err)
			}
			outputs = append(outputs, animgraph.Output{Name: out.Name, Kind: out.Kind, Controller: ctrl})
		}
		return outputs, nil
	}
}
