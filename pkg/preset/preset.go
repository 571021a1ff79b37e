// Package preset reads, converts and recovers preset definitions.
//
// A preset is a named, ordered list of (parameter, kind, value) records
// applied atomically by a preset layer. Bool values travel as 0 or 1.
package preset

import "github.com/aretw0/animgraph/pkg/domain"

// Entry is one (parameter, kind, value) record of a preset.
type Entry struct {
	Name  string      `json:"name" yaml:"name" mapstructure:"name"`
	Kind  domain.Kind `json:"type" yaml:"type" mapstructure:"type"`
	Value float64     `json:"value" yaml:"value" mapstructure:"value"`
}

// Preset is a named bundle of entries.
type Preset struct {
	Name       string  `json:"name" yaml:"name" mapstructure:"name"`
	Parameters []Entry `json:"parameters" yaml:"parameters" mapstructure:"parameters"`
}

// Entry looks up an entry by parameter name.
func (p *Preset) Entry(name string) (*Entry, bool) {
	for i := range p.Parameters {
		if p.Parameters[i].Name == name {
			return &p.Parameters[i], true
		}
	}
	return nil, false
}

// Bools returns the entries of kind bool, in order.
func (p *Preset) Bools() []Entry {
	var out []Entry
	for _, e := range p.Parameters {
		if e.Kind == domain.KindBool {
			out = append(out, e)
		}
	}
	return out
}
