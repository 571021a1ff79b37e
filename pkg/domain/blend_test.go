package domain_test

import (
	"testing"

	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clip(id string) *domain.Clip {
	return &domain.Clip{ID: id, Name: id}
}

func TestResolve_Simple1DInterpolatesAndClamps(t *testing.T) {
	p := domain.Float("X")
	tree := domain.Simple1D("x", p).
		WithClip(clip("a"), 0).
		WithClip(clip("b"), 1)
	require.NoError(t, tree.Normalize())

	assert.Equal(t, map[string]float64{"a": 1}, domain.Resolve(tree, domain.Values{"X": -3}))
	assert.Equal(t, map[string]float64{"b": 1}, domain.Resolve(tree, domain.Values{"X": 7}))

	mid := domain.Resolve(tree, domain.Values{"X": 0.25})
	assert.InDelta(t, 0.75, mid["a"], 1e-9)
	assert.InDelta(t, 0.25, mid["b"], 1e-9)
	assert.Equal(t, "a", domain.Dominant(mid))
}

func TestResolve_Direct(t *testing.T) {
	w := domain.Float("W")
	root := domain.Direct("root").
		WithWeighted(domain.Leaf(clip("a")), w).
		WithWeighted(domain.Leaf(clip("b")), w)

	got := domain.Resolve(root, domain.Values{"W": 1})
	assert.Equal(t, map[string]float64{"a": 1, "b": 1}, got)
	assert.Empty(t, domain.Resolve(root, domain.Values{"W": 0}))
}

func TestNormalize_SortsAndRejectsDuplicates(t *testing.T) {
	p := domain.Float("X")
	tree := domain.Simple1D("x", p).
		WithClip(clip("hi"), 1).
		WithClip(clip("lo"), 0)
	require.NoError(t, tree.Normalize())
	assert.Equal(t, []string{"lo", "hi"}, tree.Leaves())

	dup := domain.Simple1D("dup", p).
		WithClip(clip("a"), 0.5).
		WithClip(clip("b"), 0.5)
	assert.ErrorIs(t, dup.Normalize(), domain.ErrThresholdOrder)
}

func TestBlendNode_Params(t *testing.T) {
	outer := domain.Simple1D("outer", domain.Float("A"))
	inner := domain.Simple1D("inner", domain.Float("B")).WithClip(clip("c"), 0)
	outer.With(inner, 0).With(inner, 1)

	assert.Equal(t, []string{"A", "B"}, outer.Params())
	assert.Len(t, outer.Leaves(), 2)
}
