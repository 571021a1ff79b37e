package compile

import (
	"fmt"

	"github.com/aretw0/animgraph/pkg/domain"
)

// DirectTree creates an empty additive root. Children are added with
// WithWeighted, usually all against one constant weight parameter.
func (s *Session) DirectTree(name string) *domain.BlendNode {
	return domain.Direct(name)
}

// TreeLayer wraps a tree in a single-state layer that keeps write defaults on.
func (s *Session) TreeLayer(name string, root *domain.BlendNode) *domain.Layer {
	l := domain.NewLayer(name)
	st := l.NewState("Direct BlendTree", 0, 0)
	st.Motion = root
	st.WriteDefaults = true
	return l
}

// ToggleTree drives property between min (param at 0) and max (param at 1).
func (s *Session) ToggleTree(param domain.FloatParam, targets []string, property string, min, max float64) *domain.BlendNode {
	s.Float(param.Name())
	label := domain.Label(param.Name())
	tree := domain.Simple1D(label, param)
	for i, v := range []float64{min, max} {
		clip := s.Clip(fmt.Sprintf("%s %d", label, i), Animates(targets, property, v)...)
		tree.WithClip(clip, float64(i))
	}
	return tree
}

// MetallicTree toggles <prefix>/Metallic between 0 and 1, or between -1 and 0 when inverted.
func (s *Session) MetallicTree(prefix string, targets []string, property string, invert bool) *domain.BlendNode {
	min, max := 0.0, 1.0
	if invert {
		min, max = -1, 0
	}
	return s.ToggleTree(s.Float(prefix+"/Metallic"), targets, property, min, max)
}

// SmoothnessTree maps <prefix>/Smoothness 0, 0.5 and 1 onto -1, 0 and 1.
// The parameter defaults to the neutral midpoint.
func (s *Session) SmoothnessTree(prefix string, targets []string, property string) *domain.BlendNode {
	label := domain.Label(prefix)
	param := s.Float(prefix + "/Smoothness")
	tree := domain.Simple1D(label+" Smoothness", param)

	thresholds := []float64{0, 0.5, 1}
	values := []float64{-1, 0, 1}
	for i := range thresholds {
		clip := s.Clip(fmt.Sprintf("%s Smoothness%d", label, i), Animates(targets, property, values[i])...)
		tree.WithClip(clip, thresholds[i])
	}
	s.Override(param, 0.5)
	return tree
}

// ClipsTree spreads clips evenly over [0, 1] along param.
func (s *Session) ClipsTree(param domain.FloatParam, clips []*domain.Clip) *domain.BlendNode {
	s.Float(param.Name())
	if len(clips) < 2 {
		s.fail(fmt.Errorf("%w: clips tree over %s needs at least two clips, got %d", domain.ErrClipCount, param.Name(), len(clips)))
		if len(clips) == 0 {
			return domain.Simple1D(domain.Label(param.Name()), param)
		}
	}
	tree := domain.Simple1D(clips[0].Name+" Blend", param)
	for i, c := range clips {
		t := 0.0
		if len(clips) > 1 {
			t = float64(i) / float64(len(clips)-1)
		}
		tree.WithClip(c, t)
	}
	return tree
}

// ExclusiveToggleTree nests one axis per parameter: parameter i at 1 plays
// clips[i], at 0 it defers to the next parameter's axis. The final clip plays
// when every parameter is 0. Parameters are assumed to be driven exclusively.
func (s *Session) ExclusiveToggleTree(params []domain.FloatParam, clips []*domain.Clip) (*domain.BlendNode, error) {
	if len(params) == 0 || len(clips) != len(params)+1 {
		return nil, s.fail(fmt.Errorf("%w: need exactly one more clip than parameters (%d parameters, %d clips)",
			domain.ErrClipCount, len(params), len(clips)))
	}

	var first, last *domain.BlendNode
	for i, p := range params {
		s.Float(p.Name())
		tree := domain.Simple1D(domain.Label(p.Name()), p)
		tree.WithClip(clips[i], 1)
		if first == nil {
			first = tree
		}
		if last != nil {
			last.With(tree, 0)
		}
		last = tree
	}
	last.WithClip(clips[len(clips)-1], 0)
	return first, nil
}
