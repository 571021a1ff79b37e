package preset

import (
	"strings"

	"github.com/aretw0/animgraph/pkg/domain"
)

// Separator is the entry SyncParameters inserts before appended parameters.
const Separator = "-------------"

// FromLayer recovers preset definitions from a compiled preset layer: every
// rank-1 state whose drivers only set constants becomes a preset named after
// the state. Entries are recovered as floats.
func FromLayer(l *domain.Layer) []Preset {
	var out []Preset
	for _, st := range l.States {
		if st.Rank != 1 || st.Name == l.Entry || len(st.Drivers) == 0 {
			continue
		}
		p := Preset{Name: st.Name}
		constant := true
		for _, b := range st.Drivers {
			for _, w := range b.Writes {
				if w.Op != domain.WriteSet {
					constant = false
					break
				}
				p.Parameters = append(p.Parameters, Entry{Name: w.Param, Kind: domain.KindFloat, Value: w.Value})
			}
		}
		if constant {
			out = append(out, p)
		}
	}
	return out
}

// Merge copies recovered entries into every preset of dst whose name
// contains the recovered preset's name, ignoring case. It returns the
// number of presets updated.
func Merge(dst []Preset, recovered []Preset) int {
	updated := 0
	for _, r := range recovered {
		needle := strings.ToLower(r.Name)
		for i := range dst {
			if strings.Contains(strings.ToLower(dst[i].Name), needle) {
				dst[i].Parameters = append([]Entry(nil), r.Parameters...)
				updated++
			}
		}
	}
	return updated
}

// SyncParameters appends every controller parameter missing from list,
// after a Separator entry, and returns the extended list. A list that
// already holds the separator is extended without adding another.
func SyncParameters(list []Entry, params []domain.Parameter) []Entry {
	known := make(map[string]bool, len(list))
	for _, e := range list {
		known[e.Name] = true
	}
	out := append([]Entry(nil), list...)
	if !known[Separator] {
		out = append(out, Entry{Name: Separator})
	}
	for _, p := range params {
		if known[p.Name] {
			continue
		}
		v := p.Default
		if p.Kind == domain.KindBool && v != 0 {
			v = 1
		}
		out = append(out, Entry{Name: p.Name, Kind: p.Kind, Value: v})
	}
	return out
}
