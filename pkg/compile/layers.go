package compile

import (
	"fmt"
	"regexp"

	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/aretw0/animgraph/pkg/preset"
)

// floatSuffix matches names of bool or int values that are cast to floats
// for blend trees: "...Float", "...float" or a trailing "F" that does not
// follow another capital.
var floatSuffix = regexp.MustCompile(`(?:\b|[a-z])[Ff]loat$|[^A-Z]F$`)

// TreatAsFloat reports whether a declared parameter lives in the graph as a float.
func TreatAsFloat(name string) bool {
	return floatSuffix.MatchString(name)
}

// DefaultsLayer sets every entry to its value once, on the first local run
// while full tracking is available, then clears <paramPrefix>/FirstRun.
func (s *Session) DefaultsLayer(paramPrefix string, defaults []preset.Entry) (*domain.Layer, error) {
	l := domain.NewLayer("Set Defaults")
	waiting := l.NewState("Waiting", 0, 0)
	l.FromEntry(waiting)

	firstRun := s.Bool(paramPrefix + "/FirstRun")
	tracking := s.Int("TrackingType")
	isLocal := s.Bool("IsLocal")

	set := l.NewState("Set Defaults", 1, 0)
	waiting.TransitionsTo(set, domain.When(firstRun.IsTrue(), isLocal.IsTrue(), tracking.IsGreaterThan(2)))
	set.Exits(domain.When(firstRun.IsFalse()))

	var err error
	set.Driving(true, func(b *domain.DriverBatch) {
		for _, e := range defaults {
			if TreatAsFloat(e.Name) {
				b.Sets(s.Float(e.Name), e.Value)
				continue
			}
			switch e.Kind {
			case domain.KindFloat, "":
				b.Sets(s.Float(e.Name), e.Value)
			case domain.KindBool:
				b.SetsBool(s.Bool(e.Name), e.Value > 0.5)
			case domain.KindInt:
				b.Sets(s.Int(e.Name), float64(int64(e.Value)))
			default:
				err = s.fail(fmt.Errorf("%w: default %s has kind %q", domain.ErrUnsupportedKind, e.Name, e.Kind))
			}
		}
		b.SetsBool(firstRun, false)
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// BoolToFloatLayer mirrors p into the float parameter named target.
func (s *Session) BoolToFloatLayer(p domain.BoolParam, target string) *domain.Layer {
	s.Bool(p.Name())
	shadow := s.Float(target)

	l := domain.NewLayer(domain.Label(p.Name()) + " To Float")
	waiting := l.NewState("Waiting", 0, 0)
	l.FromEntry(waiting)

	for _, v := range []bool{true, false} {
		index := 0
		name := "False"
		if v {
			index, name = 1, "True"
		}
		st := l.NewState(name, 1, index)
		l.FromAny(st, domain.When(p.IsEqualTo(v)))
		st.Driving(false, func(b *domain.DriverBatch) {
			b.Copies(p, shadow)
		})
	}
	return l
}

// CopyBoolToFloat mirrors p into <name>_Float and returns the layer doing it
// along with the shadow handle.
func (s *Session) CopyBoolToFloat(p domain.BoolParam) (*domain.Layer, domain.FloatParam) {
	name := domain.ShadowName(p.Name())
	return s.BoolToFloatLayer(p, name), domain.Float(name)
}
