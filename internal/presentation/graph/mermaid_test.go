package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/animgraph/internal/presentation/graph"
	"github.com/aretw0/animgraph/pkg/compile"
	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayerMermaid_Shapes(t *testing.T) {
	l := domain.NewLayer("Demo")
	waiting := l.NewState("Waiting", 0, 0)
	on := l.NewState("On", 1, 0)
	tree := l.NewState("Tree", 1, 1)
	tree.Motion = domain.Direct("Root")
	on.Driving(true, func(b *domain.DriverBatch) { b.Sets(domain.Float("X"), 1) })

	waiting.TransitionsTo(on, domain.When(domain.Bool("Go").IsTrue()))
	on.Exits(domain.When(domain.Bool("Go").IsFalse()))
	l.FromAny(tree, domain.When(domain.Int("Mode").IsEqualTo(2)))

	out := graph.LayerMermaid(l, nil)
	assert.Contains(t, out, "graph TD\n")
	assert.Contains(t, out, `s0(("Waiting"))`)
	assert.Contains(t, out, `s1[["On <br/> 1 writes"]]`)
	assert.Contains(t, out, `s2[/"Tree"/]`)
	assert.Contains(t, out, `s0 -- "Go" --> s1`)
	assert.Contains(t, out, `s1 -- "!Go" --> s0`, "exit transitions point back to the entry state")
	assert.Contains(t, out, `any{{"Any State"}}`)
	assert.Contains(t, out, `any -. "Mode == 2" .-> s2`)
	assert.NotContains(t, out, "Overlay Styles")
}

func TestLayerMermaid_DanglingTarget(t *testing.T) {
	l := domain.NewLayer("Broken")
	l.NewState("Waiting", 0, 0).TransitionsTo(&domain.State{Name: "Gone Away"}, domain.Condition{})

	out := graph.LayerMermaid(l, nil)
	assert.Contains(t, out, "s0 --> missing_Gone_Away")
}

func TestLayerMermaid_Overlay(t *testing.T) {
	s := compile.NewSession("test")
	l, err := s.ExclusiveLayer("Hats", []domain.Param{s.Bool("Av/Hats/Cap"), s.Bool("Av/Hats/Beret")}, s.DefaultResetGuard())
	require.NoError(t, err)

	out := graph.LayerMermaid(l, &graph.Overlay{
		VisitedStates: []string{"Waiting", "Cap", "Cap", "Unknown"},
		CurrentState:  "Beret",
	})
	assert.Contains(t, out, "class s0 visited;")
	assert.Contains(t, out, "class s1 visited;")
	assert.Contains(t, out, "class s2 current;")
	assert.Equal(t, 1, strings.Count(out, "class s1 visited;"))
}

func TestTreeMermaid(t *testing.T) {
	s := compile.NewSession("test")
	tree := s.ToggleTree(s.Float("Av/Shirt/Glow"), []string{"Body"}, "_Glow", 0, 1)
	root := s.DirectTree("Root").WithWeighted(tree, s.Float("DirectBlendWeight"))

	out := graph.TreeMermaid(root, s.Clips())
	assert.Contains(t, out, "graph LR\n")
	assert.Contains(t, out, `n{"Root"}`)
	assert.Contains(t, out, `n -- "DirectBlendWeight" --> n_0`)
	assert.Contains(t, out, `n_0 -- "0" --> n_0_0`)
	assert.Contains(t, out, `n_0 -- "1" --> n_0_1`)
	assert.Contains(t, out, "n_0_0([")
}
