package preset

import (
	"strings"

	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/lucasb-eyer/go-colorful"
)

// ConvertRGBToHSV rewrites every <prefix>/R, <prefix>/G, <prefix>/B triple
// of p into <prefix>/H, <prefix>/S, <prefix>/V in place. Missing G or B
// components read as 0. It returns the number of triples converted.
func ConvertRGBToHSV(p *Preset) int {
	converted := 0
	for _, e := range p.Parameters {
		prefix, ok := strings.CutSuffix(e.Name, "/R")
		if !ok {
			continue
		}
		r := e.Value
		var g, b float64
		if ge, ok := p.Entry(prefix + "/G"); ok {
			g = ge.Value
		}
		if be, ok := p.Entry(prefix + "/B"); ok {
			b = be.Value
		}

		h, s, v := colorful.Color{R: r, G: g, B: b}.Hsv()
		replace := map[string]struct {
			name  string
			value float64
		}{
			prefix + "/R": {prefix + "/H", h / 360},
			prefix + "/G": {prefix + "/S", s},
			prefix + "/B": {prefix + "/V", v},
		}
		for i := range p.Parameters {
			if to, ok := replace[p.Parameters[i].Name]; ok {
				p.Parameters[i].Name = to.name
				p.Parameters[i].Value = to.value
				p.Parameters[i].Kind = domain.KindFloat
			}
		}
		converted++
	}
	return converted
}
