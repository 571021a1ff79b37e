package compile

import (
	"fmt"
	"strings"

	"github.com/aretw0/animgraph/pkg/domain"
)

// LeafFunc maps one combination of axis bits (parameter 0 first) to the
// node placed at that position.
type LeafFunc func(bits []int) *domain.BlendNode

// BinaryTree builds nested Simple1D axes over boolean-encoded float
// parameters. Each axis has a child at 0 and at 1; the last axis holds the
// nodes returned by leaf, so k parameters give 2^k leaf positions visited
// with parameter 0 varying slowest.
func (s *Session) BinaryTree(name string, params []domain.FloatParam, leaf LeafFunc) *domain.BlendNode {
	if len(params) == 0 {
		s.fail(fmt.Errorf("%w: binary tree %q needs at least one axis", domain.ErrClipCount, name))
		return domain.Simple1D(name, domain.Float(""))
	}
	for _, p := range params {
		s.Float(p.Name())
	}
	return s.binaryLevel(name, params, nil, leaf)
}

func (s *Session) binaryLevel(name string, params []domain.FloatParam, bits []int, leaf LeafFunc) *domain.BlendNode {
	depth := len(bits)
	node := domain.Simple1D(binaryName(name, params, bits), params[depth])
	for b := 0; b < 2; b++ {
		next := append(append([]int(nil), bits...), b)
		var child *domain.BlendNode
		if depth+1 == len(params) {
			child = leaf(next)
		} else {
			child = s.binaryLevel(name, params, next, leaf)
		}
		node.With(child, float64(b))
	}
	return node
}

// binaryName renders the decided prefix of a combination, e.g. "Body Color R1G?".
func binaryName(name string, params []domain.FloatParam, bits []int) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte(' ')
	for i, b := range bits {
		fmt.Fprintf(&sb, "%s%d", axisLetter(params[i]), b)
	}
	sb.WriteString(axisLetter(params[len(bits)]))
	sb.WriteByte('?')
	return sb.String()
}

func axisLetter(p domain.FloatParam) string {
	name := p.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// RGBTree drives a color property from three boolean-encoded floats
// <prefix>/R, <prefix>/G and <prefix>/B. Every corner of the cube gets its
// own clip.
func (s *Session) RGBTree(prefix string, targets []string, property string) *domain.BlendNode {
	label := domain.Label(prefix)
	params := []domain.FloatParam{
		s.Float(prefix + "/R"),
		s.Float(prefix + "/G"),
		s.Float(prefix + "/B"),
	}
	return s.BinaryTree(label+" Color", params, func(bits []int) *domain.BlendNode {
		c := domain.Color{float64(bits[0]), float64(bits[1]), float64(bits[2]), 1}
		clip := s.Clip(fmt.Sprintf("%s Color R%dG%dB%d", label, bits[0], bits[1], bits[2]),
			AnimatesColor(targets, property, c, false)...)
		return domain.Leaf(clip)
	})
}

// HSVTree drives a color property from <prefix>/H, <prefix>/S and
// <prefix>/V. The tree branches on S then V; only the saturated, bright
// corner needs the continuous hue ring:
//
//	S0V0 -> achromatic
//	S0V1 -> achromatic (same leaf)
//	S1V0 -> black
//	S1V1 -> hue ring over H
//
// The achromatic and black leaves write the same colour, so the clip cache
// hands both branches one shared clip.
func (s *Session) HSVTree(prefix string, targets []string, property string) *domain.BlendNode {
	label := domain.Label(prefix)
	params := []domain.FloatParam{
		s.Float(prefix + "/S"),
		s.Float(prefix + "/V"),
	}
	hue := s.Float(prefix + "/H")

	achromatic := s.Clip(label+" Color H?S0", AnimatesColor(targets, property, domain.Black, false)...)
	black := s.Clip(label+" Color H?S1V0", AnimatesColor(targets, property, domain.Black, false)...)

	return s.BinaryTree(label+" Color", params, func(bits []int) *domain.BlendNode {
		switch {
		case bits[0] == 0:
			return domain.Leaf(achromatic)
		case bits[1] == 0:
			return domain.Leaf(black)
		default:
			return s.HueTree(hue, targets, property, HueOptions{})
		}
	})
}
