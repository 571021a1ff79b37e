package compile_test

import (
	"testing"

	"github.com/aretw0/animgraph/pkg/compile"
	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writtenValue returns the first value the clip writes.
func writtenValue(t *testing.T, s *compile.Session, id string) float64 {
	t.Helper()
	c, ok := clipByID(s)[id]
	require.True(t, ok, "clip %s", id)
	require.NotEmpty(t, c.Writes)
	return c.Writes[0].Value[0]
}

func TestToggleAndMetallicTrees(t *testing.T) {
	s := compile.NewSession("test")
	toggle := s.ToggleTree(s.Float("Av/Shirt/Glow"), targets, "_Glow", 0.2, 0.8)
	require.Len(t, toggle.Axis.Children, 2)
	assert.Equal(t, "Av/Shirt/Glow", toggle.Axis.Param)
	assert.Equal(t, 0.2, writtenValue(t, s, toggle.Axis.Children[0].Node.Clip))
	assert.Equal(t, 0.8, writtenValue(t, s, toggle.Axis.Children[1].Node.Clip))

	inverted := s.MetallicTree("Av/Shirt", targets, "_Metallic", true)
	assert.Equal(t, "Av/Shirt/Metallic", inverted.Axis.Param)
	assert.Equal(t, -1.0, writtenValue(t, s, inverted.Axis.Children[0].Node.Clip))
	assert.Equal(t, 0.0, writtenValue(t, s, inverted.Axis.Children[1].Node.Clip))
}

func TestSmoothnessTree_DefaultsToMidpoint(t *testing.T) {
	s := compile.NewSession("test")
	tree := s.SmoothnessTree("Av/Shirt", targets, "_Smoothness")

	var thresholds []float64
	for _, c := range tree.Axis.Children {
		thresholds = append(thresholds, c.Threshold)
	}
	assert.Equal(t, []float64{0, 0.5, 1}, thresholds)

	p, ok := s.Lookup("Av/Shirt/Smoothness")
	require.True(t, ok)
	assert.Equal(t, 0.5, p.Default)

	weights := domain.Resolve(tree, domain.Values{"Av/Shirt/Smoothness": 0.5})
	require.Len(t, weights, 1)
	for id := range weights {
		assert.Equal(t, 0.0, writtenValue(t, s, id))
	}
}

func TestClipsTree(t *testing.T) {
	s := compile.NewSession("test")
	var clips []*domain.Clip
	for i, v := range []float64{0, 1, 2} {
		clips = append(clips, s.Clip("Len "+string(rune('A'+i)), compile.Animates(targets, "_Length", v)...))
	}
	tree := s.ClipsTree(s.Float("Av/Shirt/Sleeves"), clips)
	require.Len(t, tree.Axis.Children, 3)
	assert.Equal(t, 0.5, tree.Axis.Children[1].Threshold)
	assert.Equal(t, 1.0, tree.Axis.Children[2].Threshold)
	assert.NoError(t, s.Err())

	bad := compile.NewSession("test")
	bad.ClipsTree(bad.Float("X"), clips[:1])
	assert.ErrorIs(t, bad.Err(), domain.ErrClipCount)
}

func TestTreeLayer(t *testing.T) {
	s := compile.NewSession("test")
	root := s.DirectTree("Root")
	l := s.TreeLayer("Trees", root)
	require.Len(t, l.States, 1)
	assert.Equal(t, l.States[0].Name, l.Entry)
	assert.True(t, l.States[0].WriteDefaults)
	assert.Same(t, root, l.States[0].Motion)
}
