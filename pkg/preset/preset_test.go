package preset_test

import (
	"path/filepath"
	"testing"

	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/aretw0/animgraph/pkg/preset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const presetsYAML = `
presets:
  - name: Red
    parameters:
      - {name: Av/Shirt/R, type: Float, value: 1}
      - {name: Av/Shirt/G, type: Float, value: 0}
      - {name: Av/Shirt/B, type: Float, value: 0}
      - {name: Av/Shirt/Glow, type: Bool, value: true}
      - {name: Av/Shirt/Style, type: INT, value: 3}
  - name: Plain
    parameters:
      - {name: Av/Shirt/Glow, type: bool, value: 0}
`

func TestParse_YAML(t *testing.T) {
	presets, err := preset.Parse([]byte(presetsYAML), ".yaml")
	require.NoError(t, err)
	require.Len(t, presets, 2)

	red := presets[0]
	assert.Equal(t, "Red", red.Name)
	require.Len(t, red.Parameters, 5)
	assert.Equal(t, preset.Entry{Name: "Av/Shirt/Glow", Kind: domain.KindBool, Value: 1}, red.Parameters[3])
	assert.Equal(t, domain.KindInt, red.Parameters[4].Kind)
	assert.Len(t, red.Bools(), 1)
}

func TestParse_JSON(t *testing.T) {
	data := `{"presets":[{"name":"A","parameters":[{"name":"X","type":"float","value":0.5}]}]}`
	presets, err := preset.Parse([]byte(data), ".JSON")
	require.NoError(t, err)
	require.Len(t, presets, 1)
	assert.Equal(t, 0.5, presets[0].Parameters[0].Value)
}

func TestParse_Errors(t *testing.T) {
	_, err := preset.Parse([]byte("presets:\n  - parameters: []\n"), ".yaml")
	assert.ErrorContains(t, err, "no name")

	_, err = preset.Parse([]byte("presets:\n  - name: A\n    parameters:\n      - {name: X, type: vector}\n"), ".yaml")
	assert.ErrorContains(t, err, domain.ErrUnsupportedKind.Error())

	_, err = preset.Parse([]byte("{"), ".json")
	assert.Error(t, err)
}

func TestWriteAndLoad(t *testing.T) {
	presets, err := preset.Parse([]byte(presetsYAML), ".yml")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, preset.Write(path, presets))

	loaded, err := preset.Load(path)
	require.NoError(t, err)
	assert.Equal(t, presets, loaded)

	_, err = preset.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConvertRGBToHSV(t *testing.T) {
	p := preset.Preset{Name: "Cyan", Parameters: []preset.Entry{
		{Name: "Av/Shirt/R", Kind: domain.KindFloat, Value: 0},
		{Name: "Av/Shirt/G", Kind: domain.KindFloat, Value: 1},
		{Name: "Av/Shirt/B", Kind: domain.KindFloat, Value: 1},
		{Name: "Av/Shirt/Glow", Kind: domain.KindBool, Value: 1},
	}}
	assert.Equal(t, 1, preset.ConvertRGBToHSV(&p))

	h, ok := p.Entry("Av/Shirt/H")
	require.True(t, ok)
	assert.InDelta(t, 0.5, h.Value, 1e-9)
	s, _ := p.Entry("Av/Shirt/S")
	assert.InDelta(t, 1, s.Value, 1e-9)
	v, _ := p.Entry("Av/Shirt/V")
	assert.InDelta(t, 1, v.Value, 1e-9)
	_, ok = p.Entry("Av/Shirt/R")
	assert.False(t, ok)
	assert.Equal(t, "Av/Shirt/Glow", p.Parameters[3].Name)
}

func TestFromLayerAndMerge(t *testing.T) {
	l := domain.NewLayer("Shirt Presets")
	l.NewState("Waiting", 0, 0)
	l.NewState("Red", 1, 0).Driving(true, func(b *domain.DriverBatch) {
		b.Sets(domain.Float("Av/Shirt/H"), 0.1)
		b.Sets(domain.Float("Av/Shirt/Glow"), 1)
	})
	l.NewState("Load Custom Slot 1", 1, 2).Driving(true, func(b *domain.DriverBatch) {
		b.Copies(domain.Float("Av/Shirt/SaveSlot/S1/H"), domain.Float("Av/Shirt/H"))
	})
	l.NewState("Save Custom Slot 1", 2, 2).Driving(true, func(b *domain.DriverBatch) {
		b.Sets(domain.Bool("Av/Shirt/SaveSlot/S1/Save"), 0)
	})

	recovered := preset.FromLayer(l)
	require.Len(t, recovered, 1)
	assert.Equal(t, "Red", recovered[0].Name)
	assert.Equal(t, []preset.Entry{
		{Name: "Av/Shirt/H", Kind: domain.KindFloat, Value: 0.1},
		{Name: "Av/Shirt/Glow", Kind: domain.KindFloat, Value: 1},
	}, recovered[0].Parameters)

	files := []preset.Preset{{Name: "Preset RED"}, {Name: "Preset Blue"}}
	assert.Equal(t, 1, preset.Merge(files, recovered))
	assert.Len(t, files[0].Parameters, 2)
	assert.Empty(t, files[1].Parameters)
}

func TestSyncParameters(t *testing.T) {
	list := []preset.Entry{{Name: "A", Kind: domain.KindFloat}}
	params := []domain.Parameter{
		{Name: "A", Kind: domain.KindFloat},
		{Name: "B", Kind: domain.KindBool, Default: 1},
		{Name: "C", Kind: domain.KindInt, Default: 4},
	}
	got := preset.SyncParameters(list, params)
	assert.Equal(t, []preset.Entry{
		{Name: "A", Kind: domain.KindFloat},
		{Name: preset.Separator},
		{Name: "B", Kind: domain.KindBool, Value: 1},
		{Name: "C", Kind: domain.KindInt, Value: 4},
	}, got)
	assert.Len(t, list, 1)
}

func TestSyncParameters_Idempotent(t *testing.T) {
	params := []domain.Parameter{{Name: "A", Kind: domain.KindFloat}, {Name: "B", Kind: domain.KindFloat}}
	once := preset.SyncParameters(nil, params[:1])
	twice := preset.SyncParameters(once, params)
	assert.Equal(t, []preset.Entry{
		{Name: preset.Separator},
		{Name: "A", Kind: domain.KindFloat},
		{Name: "B", Kind: domain.KindFloat},
	}, twice)
}
