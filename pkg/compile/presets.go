package compile

import (
	"fmt"
	"strings"

	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/aretw0/animgraph/pkg/preset"
)

// RandomizeSelector is the selector value reserved for the randomize state.
const RandomizeSelector = 255

// PresetOptions tunes the optional parts of a preset layer.
type PresetOptions struct {
	// Randomize adds a state entered on RandomizeSelector that draws every
	// parameter of the first preset at random.
	Randomize bool
	// CustomSlots is the number of save/load slots.
	CustomSlots int
}

// PresetLayer builds a layer applying presets through the int parameter
// <paramPrefix>/Preset. Selector value i+1 enters the state of presets[i];
// changing the selector away from it returns to Waiting.
//
// Save slots and the randomize state work on the parameter set of the
// first preset. Every driver of the layer is local.
//
// Grid layout, with P presets and A slots:
//
//	rank 0: Waiting at 0
//	rank 1: presets at 0..P-1, loads at P+1..P+A, Randomize at P+A+2
//	rank 2: saves at P+1..P+A, "round to 0" states from P+A+2
//	rank 3: "round to 1" states from P+A+2
func (s *Session) PresetLayer(layerPrefix, paramPrefix string, presets []preset.Preset, opts PresetOptions) (*domain.Layer, error) {
	if len(presets) == 0 {
		return nil, s.fail(fmt.Errorf("%w: preset layer %s", domain.ErrNoPresets, layerPrefix))
	}
	if len(presets) >= RandomizeSelector {
		return nil, s.fail(fmt.Errorf("%w: %d presets would reach selector value %d",
			domain.ErrReservedIndex, len(presets), RandomizeSelector))
	}
	if opts.CustomSlots < 0 {
		opts.CustomSlots = 0
	}
	for _, p := range presets {
		for _, e := range p.Parameters {
			if _, err := s.presetParam(e); err != nil {
				return nil, err
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	l := domain.NewLayer(layerPrefix + " Presets")
	waiting := l.NewState("Waiting", 0, 0)
	l.FromEntry(waiting)
	selector := s.Int(paramPrefix + "/Preset")

	for i, p := range presets {
		st := l.NewState(p.Name, 1, i)
		waiting.TransitionsTo(st, domain.When(selector.IsEqualTo(i+1)))
		st.Exits(domain.When(selector.IsNotEqualTo(i + 1)))
		st.Driving(true, func(b *domain.DriverBatch) {
			for _, e := range p.Parameters {
				param, _ := s.presetParam(e)
				b.Sets(param, e.Value)
			}
		})
	}

	template := presets[0].Parameters
	for n := 1; n <= opts.CustomSlots; n++ {
		s.addSlot(l, waiting, paramPrefix, n, len(presets)+n, template)
	}

	if opts.Randomize {
		base := len(presets) + opts.CustomSlots + 2
		s.addRandomize(l, waiting, selector, base, template)
	}

	if err := l.CheckCoordinates(); err != nil {
		return nil, s.fail(err)
	}
	s.logger.Debug("preset layer compiled", "layer", l.Name, "presets", len(presets), "states", len(l.States))
	return l, nil
}

// presetParam registers the animator parameter behind a preset entry.
// Bool entries live in float parameters because the preset format carries
// their value as 0 or 1.
func (s *Session) presetParam(e preset.Entry) (domain.Param, error) {
	switch e.Kind {
	case domain.KindFloat, domain.KindBool, "":
		return s.Float(e.Name), nil
	case domain.KindInt:
		return s.Int(e.Name), nil
	default:
		return nil, s.fail(fmt.Errorf("%w: preset entry %s has kind %q", domain.ErrUnsupportedKind, e.Name, e.Kind))
	}
}

// SlotPrefix is the parameter prefix of save slot n.
func SlotPrefix(paramPrefix string, n int) string {
	return fmt.Sprintf("%s/SaveSlot/S%d", paramPrefix, n)
}

// SlotName maps a live parameter name to its copy in a save slot.
func SlotName(name, paramPrefix, slotPrefix string) string {
	if strings.HasPrefix(name, paramPrefix) {
		return slotPrefix + strings.TrimPrefix(name, paramPrefix)
	}
	return slotPrefix + "/" + name
}

func (s *Session) addSlot(l *domain.Layer, waiting *domain.State, paramPrefix string, n, index int, template []preset.Entry) {
	prefix := SlotPrefix(paramPrefix, n)
	save := s.Bool(prefix + "/Save")
	load := s.Bool(prefix + "/Load")
	open := s.Bool(prefix + "/Open")

	loadState := l.NewState(fmt.Sprintf("Load Custom Slot %d", n), 1, index)
	saveState := l.NewState(fmt.Sprintf("Save Custom Slot %d", n), 2, index)

	waiting.TransitionsTo(loadState, domain.When(load.IsTrue()))
	loadState.Exits(domain.When(load.IsFalse()))
	waiting.TransitionsTo(saveState, domain.When(save.IsTrue()))
	saveState.Exits(domain.When(save.IsFalse()))

	loadState.Driving(true, func(b *domain.DriverBatch) {
		for _, e := range template {
			live, _ := s.presetParam(e)
			b.Copies(s.slotParam(live, paramPrefix, prefix), live)
		}
		b.SetsBool(load, false)
		b.SetsBool(open, false)
	})
	saveState.Driving(true, func(b *domain.DriverBatch) {
		for _, e := range template {
			live, _ := s.presetParam(e)
			b.Copies(live, s.slotParam(live, paramPrefix, prefix))
		}
		b.SetsBool(save, false)
		b.SetsBool(open, false)
	})
}

func (s *Session) slotParam(live domain.Param, paramPrefix, slotPrefix string) domain.Param {
	name := SlotName(live.Name(), paramPrefix, slotPrefix)
	if live.Kind() == domain.KindInt {
		return s.Int(name)
	}
	return s.Float(name)
}

// RandomName is the float a randomized bool entry is drawn into before rounding.
func RandomName(name string) string {
	return name + "_Random"
}

func (s *Session) addRandomize(l *domain.Layer, waiting *domain.State, selector domain.IntParam, base int, template []preset.Entry) {
	random := l.NewState("Randomize", 1, base)
	waiting.TransitionsTo(random, domain.When(selector.IsEqualTo(RandomizeSelector)))
	random.Exits(domain.When(selector.IsNotEqualTo(RandomizeSelector)))

	var bools []preset.Entry
	random.Driving(true, func(b *domain.DriverBatch) {
		for _, e := range template {
			live, _ := s.presetParam(e)
			switch e.Kind {
			case domain.KindInt:
				b.Randomizes(live, 0, 255)
			case domain.KindBool:
				shadow := s.Float(RandomName(e.Name))
				b.Randomizes(shadow, 0, 1)
				b.Copies(shadow, live)
				bools = append(bools, e)
			default:
				b.Randomizes(live, 0, 1)
			}
		}
		b.Sets(selector, 0)
	})

	// The rounding states snap the live float to 0 or 1 once the random
	// shadow settles on one side of the midpoint. Each sets both values, so
	// it leaves on the next tick and is not re-entered.
	for p, e := range bools {
		live := s.Float(e.Name)
		shadow := s.Float(RandomName(e.Name))
		for i := 0; i < 2; i++ {
			st := l.NewState(fmt.Sprintf("%s Round to %d", domain.Label(e.Name), i), 2+i, base+p)
			if i == 0 {
				l.FromAny(st, domain.When(shadow.IsLessThan(0.5), shadow.IsGreaterThan(0)))
				st.Exits(domain.When(live.IsLessThan(0.5)))
			} else {
				l.FromAny(st, domain.When(shadow.IsGreaterThan(0.5), shadow.IsLessThan(1)))
				st.Exits(domain.When(live.IsGreaterThan(0.5)))
			}
			v := float64(i)
			st.Driving(true, func(b *domain.DriverBatch) {
				b.Sets(live, v)
				b.Sets(shadow, v)
			})
		}
	}
}
