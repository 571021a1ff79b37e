package project_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/animgraph"
	"github.com/aretw0/animgraph/internal/project"
	"github.com/aretw0/animgraph/pkg/adapters/memory"
	"github.com/aretw0/animgraph/pkg/compile"
	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_BuildsEveryOutput(t *testing.T) {
	p, err := project.Load("testdata/avatar.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Avatar", p.Container)
	assert.Equal(t, "testdata", p.Dir)
	require.Len(t, p.Outputs, 2)

	g, err := animgraph.New(p.Container, memory.NewStore())
	require.NoError(t, err)
	ctx := context.Background()
	res, err := g.Regenerate(ctx, p.Build(project.DefaultRegistry()))
	require.NoError(t, err)
	require.Len(t, res.Slots, 2)
	assert.Equal(t, "Avatar_Main_Animator", res.Slots[0].Key)
	assert.Equal(t, "Avatar_Presets_Menu", res.Slots[1].Key)

	main, err := g.Controller(ctx, "Main")
	require.NoError(t, err)
	trees := main.Layer("Main Trees")
	require.NotNil(t, trees)
	root := trees.States[0].Motion
	require.NotNil(t, root)
	assert.Len(t, root.Axis.Children, 9)
	assert.NotNil(t, main.Layer("Hats Exclusive States"))
	assert.NotNil(t, main.Layer("Sparkle To Float"))

	weight, ok := main.Parameter(project.DefaultWeight)
	require.True(t, ok)
	assert.Equal(t, 1.0, weight.Default)

	slot, err := g.Lookup(ctx, "Presets", "Menu")
	require.NoError(t, err)
	menu, err := domain.DecodeController(slot.Content)
	require.NoError(t, err)

	layer := menu.Layer("Shirt Presets")
	require.NotNil(t, layer)
	assert.NotNil(t, layer.State("Red"))
	assert.NotNil(t, layer.State("Teal"))
	assert.NotNil(t, layer.State("Randomize"))
	assert.NotNil(t, layer.State("Load Custom Slot 2"))

	red := layer.State("Red")
	var written []string
	for _, w := range red.Drivers[0].Writes {
		written = append(written, w.Param)
	}
	assert.Contains(t, written, "Av/Shirt/H", "RGB presets are converted to HSV")
	assert.NotContains(t, written, "Av/Shirt/R")

	defaults := menu.Layer("Set Defaults")
	require.NotNil(t, defaults)
	writes := defaults.State("Set Defaults").Drivers[0].Writes
	require.Len(t, writes, 3)
	assert.Equal(t, "Av/Body/Height", writes[0].Param)
	assert.Equal(t, 0.75, writes[0].Value, "later presets override earlier defaults")
	assert.Equal(t, domain.KindBool, writes[1].Kind)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"no container":     "outputs: []\n",
		"unnamed output":   "container: A\noutputs:\n  - components: []\n",
		"duplicate output": "container: A\noutputs:\n  - name: X\n  - name: X\n",
		"unknown field":    "container: A\ncolour: red\n",
		"bad yaml":         "container: [\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := project.Parse([]byte(data), ".")
			assert.Error(t, err)
		})
	}
}

func TestBuild_ComponentErrors(t *testing.T) {
	cases := map[string]string{
		"unknown kind":    "kind: sparkles\n",
		"missing kind":    "prefix: Av/Shirt\n",
		"unknown key":     "kind: rgb\nprefix: Av/Shirt\ntargets: [Body]\nprefx: x\n",
		"missing prefix":  "kind: hsv\ntargets: [Body]\n",
		"clip count":      "kind: exclusive_toggle\nparams: [A, B]\ntargets: [Hat]\nproperty: _V\nvalues: [1, 2]\n",
		"bad reset":       "kind: exclusive\nprefix: Hats\nreset: sometimes\n",
		"int exclusive":   "kind: exclusive\nprefix: Hats\nparams: [{name: Av/Hats/Mode, type: int}]\n",
		"missing presets": "kind: presets\nparam_prefix: Av/Shirt\nfile: nope.yaml\n",
	}
	for name, component := range cases {
		t.Run(name, func(t *testing.T) {
			data := "container: A\noutputs:\n  - name: Main\n    components:\n      - " +
				indent(component) + "\n"
			p, err := project.Parse([]byte(data), "testdata")
			require.NoError(t, err)

			_, err = p.Build(project.DefaultRegistry())(compile.NewSession("A"))
			assert.Error(t, err)
		})
	}
}

func TestRegistry_Custom(t *testing.T) {
	reg := project.NewRegistry()
	reg.Register("glow", func(s *compile.Session, spec map[string]any, a *project.Assembly) error {
		a.Trees = append(a.Trees, s.ToggleTree(s.Float("Av/Glow"), []string{"Body"}, "_Glow", 0, 1))
		return nil
	})
	assert.Equal(t, []string{"glow"}, reg.Kinds())

	p, err := project.Parse([]byte("container: A\noutputs:\n  - name: Main\n    direct_weight: W\n    components:\n      - kind: glow\n"), ".")
	require.NoError(t, err)
	outputs, err := p.Build(reg)(compile.NewSession("A"))
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	_, ok := outputs[0].Controller.Parameter("W")
	assert.True(t, ok)
}

func TestDefaultRegistry_Kinds(t *testing.T) {
	assert.Contains(t, project.DefaultRegistry().Kinds(), "presets")
	assert.Len(t, project.DefaultRegistry().Kinds(), 14)
}

// indent continues a YAML mapping under a list item.
func indent(s string) string {
	return strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "\n        ")
}
