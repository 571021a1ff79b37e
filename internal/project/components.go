package project

import (
	"fmt"
	"path/filepath"

	"github.com/aretw0/animgraph/pkg/compile"
	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/aretw0/animgraph/pkg/preset"
)

var builtins = map[string]ComponentFunc{
	"rgb":              colorTree((*compile.Session).RGBTree),
	"hsv":              colorTree((*compile.Session).HSVTree),
	"pattern":          colorTree((*compile.Session).PatternTree),
	"smoothness":       colorTree((*compile.Session).SmoothnessTree),
	"metallic":         metallic,
	"hue":              hue,
	"toggle":           toggle,
	"step":             valueTree(false),
	"clips":            valueTree(true),
	"exclusive_toggle": exclusiveToggle,
	"exclusive":        exclusive,
	"presets":          presets,
	"defaults":         defaults,
	"bool_to_float":    boolToFloat,
}

// prefixed is shared by the trees keyed on a parameter prefix.
type prefixed struct {
	Kind     string   `mapstructure:"kind"`
	Prefix   string   `mapstructure:"prefix"`
	Targets  []string `mapstructure:"targets"`
	Property string   `mapstructure:"property"`
	Invert   bool     `mapstructure:"invert"`
}

func (c prefixed) check() error {
	if c.Prefix == "" {
		return fmt.Errorf("%s: prefix is required", c.Kind)
	}
	if len(c.Targets) == 0 {
		return fmt.Errorf("%s: at least one target is required", c.Kind)
	}
	return nil
}

func colorTree(fn func(*compile.Session, string, []string, string) *domain.BlendNode) ComponentFunc {
	return func(s *compile.Session, spec map[string]any, a *Assembly) error {
		var c prefixed
		if err := decode(spec, &c); err != nil {
			return err
		}
		if err := c.check(); err != nil {
			return err
		}
		a.Trees = append(a.Trees, fn(s, c.Prefix, c.Targets, c.Property))
		return nil
	}
}

func metallic(s *compile.Session, spec map[string]any, a *Assembly) error {
	var c prefixed
	if err := decode(spec, &c); err != nil {
		return err
	}
	if err := c.check(); err != nil {
		return err
	}
	a.Trees = append(a.Trees, s.MetallicTree(c.Prefix, c.Targets, c.Property, c.Invert))
	return nil
}

type hueSpec struct {
	Kind       string   `mapstructure:"kind"`
	Param      string   `mapstructure:"param"`
	Targets    []string `mapstructure:"targets"`
	Property   string   `mapstructure:"property"`
	Samples    int      `mapstructure:"samples"`
	Brightness float64  `mapstructure:"brightness"`
	Anchors    bool     `mapstructure:"anchors"`
	Extended   bool     `mapstructure:"extended"`
}

func hue(s *compile.Session, spec map[string]any, a *Assembly) error {
	var c hueSpec
	if err := decode(spec, &c); err != nil {
		return err
	}
	if c.Param == "" {
		return fmt.Errorf("hue: param is required")
	}
	a.Trees = append(a.Trees, s.HueTree(s.Float(c.Param), c.Targets, c.Property, compile.HueOptions{
		Brightness: c.Brightness,
		Anchors:    c.Anchors,
		Extended:   c.Extended,
		Samples:    c.Samples,
	}))
	return nil
}

type toggleSpec struct {
	Kind     string   `mapstructure:"kind"`
	Param    string   `mapstructure:"param"`
	Targets  []string `mapstructure:"targets"`
	Property string   `mapstructure:"property"`
	Min      float64  `mapstructure:"min"`
	Max      *float64 `mapstructure:"max"`
}

func toggle(s *compile.Session, spec map[string]any, a *Assembly) error {
	var c toggleSpec
	if err := decode(spec, &c); err != nil {
		return err
	}
	if c.Param == "" {
		return fmt.Errorf("toggle: param is required")
	}
	max := 1.0
	if c.Max != nil {
		max = *c.Max
	}
	a.Trees = append(a.Trees, s.ToggleTree(s.Float(c.Param), c.Targets, c.Property, c.Min, max))
	return nil
}

// valuesSpec declares one clip per value, each writing property on targets.
type valuesSpec struct {
	Kind     string    `mapstructure:"kind"`
	Name     string    `mapstructure:"name"`
	Param    string    `mapstructure:"param"`
	Params   []string  `mapstructure:"params"`
	Targets  []string  `mapstructure:"targets"`
	Property string    `mapstructure:"property"`
	Values   []float64 `mapstructure:"values"`
}

func (c valuesSpec) clips(s *compile.Session) []*domain.Clip {
	name := c.Name
	if name == "" {
		name = domain.Label(c.Param)
	}
	clips := make([]*domain.Clip, len(c.Values))
	for i, v := range c.Values {
		clips[i] = s.Clip(fmt.Sprintf("%s %d", name, i), compile.Animates(c.Targets, c.Property, v)...)
	}
	return clips
}

// valueTree builds a StepTree, or a ClipsTree when spread is set.
func valueTree(spread bool) ComponentFunc {
	return func(s *compile.Session, spec map[string]any, a *Assembly) error {
		var c valuesSpec
		if err := decode(spec, &c); err != nil {
			return err
		}
		if c.Param == "" {
			return fmt.Errorf("%s: param is required", c.Kind)
		}
		param := s.Float(c.Param)
		if spread {
			a.Trees = append(a.Trees, s.ClipsTree(param, c.clips(s)))
			return nil
		}
		name := c.Name
		if name == "" {
			name = domain.Label(c.Param)
		}
		a.Trees = append(a.Trees, s.StepTree(name+" Step", param, c.clips(s)))
		return nil
	}
}

func exclusiveToggle(s *compile.Session, spec map[string]any, a *Assembly) error {
	var c valuesSpec
	if err := decode(spec, &c); err != nil {
		return err
	}
	if c.Name == "" {
		c.Name = "Exclusive"
	}
	params := make([]domain.FloatParam, len(c.Params))
	for i, name := range c.Params {
		params[i] = s.Float(name)
	}
	tree, err := s.ExclusiveToggleTree(params, c.clips(s))
	if err != nil {
		return err
	}
	a.Trees = append(a.Trees, tree)
	return nil
}

type paramSpec struct {
	Name string      `mapstructure:"name"`
	Type domain.Kind `mapstructure:"type"`
}

func (p paramSpec) handle(s *compile.Session) domain.Param {
	switch p.Type {
	case domain.KindBool:
		return s.Bool(p.Name)
	case domain.KindInt:
		return s.Int(p.Name)
	}
	return s.Float(p.Name)
}

type exclusiveSpec struct {
	Kind   string      `mapstructure:"kind"`
	Prefix string      `mapstructure:"prefix"`
	Params []paramSpec `mapstructure:"params"`
	// Reset is "tracking" (default, full tracking required) or "always".
	Reset string `mapstructure:"reset"`
}

func exclusive(s *compile.Session, spec map[string]any, a *Assembly) error {
	var c exclusiveSpec
	if err := decode(spec, &c); err != nil {
		return err
	}
	if c.Prefix == "" {
		return fmt.Errorf("exclusive: prefix is required")
	}

	var guard domain.Condition
	switch c.Reset {
	case "", "tracking":
		guard = s.DefaultResetGuard()
	case "always":
	default:
		return fmt.Errorf("exclusive: unknown reset mode %q", c.Reset)
	}

	params := make([]domain.Param, len(c.Params))
	for i, p := range c.Params {
		params[i] = p.handle(s)
	}
	l, err := s.ExclusiveLayer(c.Prefix, params, guard)
	if err != nil {
		return err
	}
	a.Layers = append(a.Layers, l)
	return nil
}

type presetsSpec struct {
	Kind        string          `mapstructure:"kind"`
	LayerPrefix string          `mapstructure:"layer_prefix"`
	ParamPrefix string          `mapstructure:"param_prefix"`
	File        string          `mapstructure:"file"`
	Presets     []preset.Preset `mapstructure:"presets"`
	Randomize   bool            `mapstructure:"randomize"`
	Slots       int             `mapstructure:"slots"`
	// ConvertHSV rewrites R,G,B preset triples into H,S,V before compiling.
	ConvertHSV bool `mapstructure:"convert_hsv"`
}

func (c presetsSpec) load(dir string) ([]preset.Preset, error) {
	list := append([]preset.Preset(nil), c.Presets...)
	if c.File != "" {
		path := c.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		loaded, err := preset.Load(path)
		if err != nil {
			return nil, err
		}
		list = append(list, loaded...)
	}
	if c.ConvertHSV {
		for i := range list {
			preset.ConvertRGBToHSV(&list[i])
		}
	}
	return list, nil
}

func presets(s *compile.Session, spec map[string]any, a *Assembly) error {
	var c presetsSpec
	if err := decode(spec, &c); err != nil {
		return err
	}
	if c.ParamPrefix == "" {
		return fmt.Errorf("presets: param_prefix is required")
	}
	if c.LayerPrefix == "" {
		c.LayerPrefix = domain.Label(c.ParamPrefix)
	}
	list, err := c.load(a.Dir)
	if err != nil {
		return err
	}
	l, err := s.PresetLayer(c.LayerPrefix, c.ParamPrefix, list, compile.PresetOptions{
		Randomize:   c.Randomize,
		CustomSlots: c.Slots,
	})
	if err != nil {
		return err
	}
	a.Layers = append(a.Layers, l)
	return nil
}

func defaults(s *compile.Session, spec map[string]any, a *Assembly) error {
	var c presetsSpec
	if err := decode(spec, &c); err != nil {
		return err
	}
	if c.ParamPrefix == "" {
		return fmt.Errorf("defaults: param_prefix is required")
	}
	list, err := c.load(a.Dir)
	if err != nil {
		return err
	}

	// Later presets override earlier values of the same parameter.
	var entries []preset.Entry
	index := make(map[string]int)
	for _, p := range list {
		for _, e := range p.Parameters {
			if i, ok := index[e.Name]; ok {
				entries[i] = e
				continue
			}
			index[e.Name] = len(entries)
			entries = append(entries, e)
		}
	}
	l, err := s.DefaultsLayer(c.ParamPrefix, entries)
	if err != nil {
		return err
	}
	a.Layers = append(a.Layers, l)
	return nil
}

type boolToFloatSpec struct {
	Kind   string `mapstructure:"kind"`
	Param  string `mapstructure:"param"`
	Target string `mapstructure:"target"`
}

func boolToFloat(s *compile.Session, spec map[string]any, a *Assembly) error {
	var c boolToFloatSpec
	if err := decode(spec, &c); err != nil {
		return err
	}
	if c.Param == "" {
		return fmt.Errorf("bool_to_float: param is required")
	}
	if c.Target == "" {
		l, _ := s.CopyBoolToFloat(s.Bool(c.Param))
		a.Layers = append(a.Layers, l)
		return nil
	}
	a.Layers = append(a.Layers, s.BoolToFloatLayer(s.Bool(c.Param), c.Target))
	return nil
}
