package compile_test

import (
	"testing"

	"github.com/aretw0/animgraph/pkg/compile"
	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var targets = []string{"Body", "Sleeves"}

// clipByID indexes the session clips for assertions on tree leaves.
func clipByID(s *compile.Session) map[string]*domain.Clip {
	out := make(map[string]*domain.Clip)
	for _, c := range s.Clips() {
		out[c.ID] = c
	}
	return out
}

func TestSession_ParametersAreLazyAndShared(t *testing.T) {
	s := compile.NewSession("test")
	a := s.Float("Av/Shirt/Hue")
	b := s.Float("Av/Shirt/Hue")
	s.Bool("Av/Shirt/On")

	assert.Equal(t, a, b)
	params := s.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "Av/Shirt/Hue", params[0].Name)
	assert.Equal(t, domain.KindBool, params[1].Kind)
	assert.NoError(t, s.Err())
}

func TestSession_KindMismatchIsSticky(t *testing.T) {
	s := compile.NewSession("test")
	s.Float("X")
	s.Bool("X")
	s.Int("X")

	require.ErrorIs(t, s.Err(), domain.ErrKindMismatch)
	assert.Contains(t, s.Err().Error(), "requested as bool", "first error wins")

	_, err := s.Controller()
	assert.ErrorIs(t, err, domain.ErrKindMismatch)
}

func TestSession_ClipsAreDeduplicated(t *testing.T) {
	s := compile.NewSession("test")
	a := s.Clip("first", compile.Animates(targets, "_Metallic", 1)...)
	b := s.Clip("second", compile.Animates(targets, "_Metallic", 1)...)
	c := s.Clip("third", compile.Animates(targets, "_Metallic", 0)...)

	assert.Same(t, a, b)
	assert.Equal(t, "first", b.Name)
	assert.NotEqual(t, a.ID, c.ID)
	assert.Len(t, s.Clips(), 2)
}

func TestSession_Override(t *testing.T) {
	s := compile.NewSession("test")
	s.SmoothnessTree("Av/Shirt", targets, "_Glossiness")

	p, ok := s.Lookup("Av/Shirt/Smoothness")
	require.True(t, ok)
	assert.Equal(t, 0.5, p.Default)
}

func buildAvatar(s *compile.Session) (*domain.Controller, error) {
	w := s.Float("DirectBlendWeight")
	s.Override(w, 1)
	root := s.DirectTree("Root").
		WithWeighted(s.HSVTree("Av/Shirt", targets, "_Color"), w).
		WithWeighted(s.PatternTree("Av/Shirt", targets, "_Offset"), w).
		WithWeighted(s.MetallicTree("Av/Shirt", targets, "_Metallic", false), w)

	exclusive, err := s.ExclusiveLayer("Hats", []domain.Param{
		s.Bool("Av/Hats/Cap"),
		s.Bool("Av/Hats/Beanie"),
	}, s.DefaultResetGuard())
	if err != nil {
		return nil, err
	}
	presets, err := s.PresetLayer("Shirt", "Av/Shirt", testPresets(), compile.PresetOptions{Randomize: true, CustomSlots: 2})
	if err != nil {
		return nil, err
	}
	return s.Controller(s.TreeLayer("Shirt Trees", root), exclusive, presets)
}

func TestController_EncodingIsDeterministic(t *testing.T) {
	first, err := buildAvatar(compile.NewSession("avatar"))
	require.NoError(t, err)
	second, err := buildAvatar(compile.NewSession("avatar"))
	require.NoError(t, err)

	a, err := first.Encode()
	require.NoError(t, err)
	b, err := second.Encode()
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))

	decoded, err := domain.DecodeController(a)
	require.NoError(t, err)
	assert.Len(t, decoded.Layers, 3)
	for _, l := range decoded.Layers {
		assert.NoError(t, l.CheckCoordinates(), l.Name)
	}
}
