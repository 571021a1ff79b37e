package compile

import (
	"fmt"

	"github.com/aretw0/animgraph/pkg/domain"
)

// StepEpsilon is the width of the ramp between two steps of a StepTree.
// It must exceed the runtime's sampling epsilon while staying imperceptible.
const StepEpsilon = 0.001

// StepTree encodes an ordered selection of clips as a piecewise-constant
// function of param. Clip 0 is anchored at 0; every clip i is then placed at
// i/N+StepEpsilon and (i+1)/N, so interpolation between those two thresholds
// is constant and the StepEpsilon gap absorbs the ramp from clip i-1.
func (s *Session) StepTree(name string, param domain.FloatParam, clips []*domain.Clip) *domain.BlendNode {
	s.Float(param.Name())
	tree := domain.Simple1D(name, param)
	if len(clips) == 0 {
		s.fail(fmt.Errorf("%w: step tree %q needs at least one clip", domain.ErrClipCount, name))
		return tree
	}

	n := float64(len(clips))
	if StepEpsilon >= 1/n {
		s.fail(fmt.Errorf("%w: step tree %q has %d clips, steps would be narrower than StepEpsilon",
			domain.ErrClipCount, name, len(clips)))
		return tree
	}
	tree.WithClip(clips[0], 0)
	for i, c := range clips {
		tree.WithClip(c, float64(i)/n+StepEpsilon)
		tree.WithClip(c, float64(i+1)/n)
	}
	return tree
}

// PatternOffsets are the texture offsets of the pattern selector: off plus
// four patterns, each an (x, y, z, w) quadruple.
var PatternOffsets = [][4]float64{
	{0, 0, 0, 0},
	{0.5, 0.5, 0, 0},
	{0.5, 0.5, 0.5, 0},
	{0.5, 0.5, 0, 0.5},
	{0.5, 0.5, 0.5, 0.5},
}

var patternAxes = [4]string{"x", "y", "z", "w"}

// PatternTree selects one of PatternOffsets with <prefix>/Pattern, writing
// the four components of <propertyPrefix>.
func (s *Session) PatternTree(prefix string, targets []string, propertyPrefix string) *domain.BlendNode {
	clips := make([]*domain.Clip, len(PatternOffsets))
	for i, offsets := range PatternOffsets {
		var writes []domain.PropertyWrite
		for a, axis := range patternAxes {
			writes = append(writes, Animates(targets, propertyPrefix+"."+axis, offsets[a])...)
		}
		clips[i] = s.Clip(fmt.Sprintf("Pattern %d", i), writes...)
	}
	return s.StepTree(domain.Label(prefix)+" Pattern Blend", s.Float(prefix+"/Pattern"), clips)
}
