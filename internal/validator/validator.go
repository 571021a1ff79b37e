package validator

import (
	"fmt"

	"github.com/aretw0/animgraph/pkg/domain"
)

// Validate checks a composed controller for references that would break at
// runtime: transition targets, parameters read by guards, drivers and
// trees, clips used by leaves, and state coordinates. Every problem found
// is reported in one domain.AggregateError.
func Validate(ctrl *domain.Controller) error {
	v := &checker{
		params: make(map[string]domain.Kind, len(ctrl.Parameters)),
		clips:  make(map[string]bool, len(ctrl.Clips)),
	}
	for _, p := range ctrl.Parameters {
		v.params[p.Name] = p.Kind
	}
	for _, c := range ctrl.Clips {
		v.clips[c.ID] = true
	}

	layers := make(map[string]bool, len(ctrl.Layers))
	for _, l := range ctrl.Layers {
		if layers[l.Name] {
			v.addf("duplicate layer %q", l.Name)
		}
		layers[l.Name] = true
		v.layer(l)
	}

	if len(v.errs) > 0 {
		return &domain.AggregateError{Errors: v.errs}
	}
	return nil
}

type checker struct {
	params map[string]domain.Kind
	clips  map[string]bool
	errs   []error
}

func (v *checker) addf(format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf(format, args...))
}

func (v *checker) param(where, name string) (domain.Kind, bool) {
	kind, ok := v.params[name]
	if !ok {
		v.addf("%w: %s reads unknown parameter %q", domain.ErrLookup, where, name)
	}
	return kind, ok
}

func (v *checker) layer(l *domain.Layer) {
	states := make(map[string]bool, len(l.States))
	for _, s := range l.States {
		states[s.Name] = true
	}
	if !states[l.Entry] {
		v.addf("%w: layer %s entry state %q does not exist", domain.ErrLookup, l.Name, l.Entry)
	}
	if err := l.CheckCoordinates(); err != nil {
		v.errs = append(v.errs, err)
	}

	check := func(where string, t domain.Transition) {
		if !t.Exit && !states[t.Target] {
			v.addf("%w: %s targets missing state %q", domain.ErrLookup, where, t.Target)
		}
		v.condition(where, t.Guard)
	}
	for i, t := range l.Any {
		check(fmt.Sprintf("layer %s any-state transition %d", l.Name, i), t)
	}
	for _, s := range l.States {
		where := fmt.Sprintf("layer %s state %s", l.Name, s.Name)
		for _, t := range s.Transitions {
			check(where, t)
		}
		for _, b := range s.Drivers {
			for _, w := range b.Writes {
				if kind, ok := v.param(where+" driver", w.Param); ok && kind != w.Kind {
					v.addf("%w: %s driver writes %s as %s", domain.ErrKindMismatch, where, w.Param, w.Kind)
				}
				if w.Op == domain.WriteCopy {
					v.param(where+" driver", w.Source)
				}
			}
		}
		if s.Motion != nil {
			v.tree(where, s.Motion)
		}
	}
}

func (v *checker) condition(where string, c domain.Condition) {
	for _, group := range c.Groups {
		for _, term := range group {
			if kind, ok := v.param(where+" guard", term.Param); ok && kind != term.Kind {
				v.addf("%w: %s guard compares %s as %s", domain.ErrKindMismatch, where, term.Param, term.Kind)
			}
		}
	}
}

func (v *checker) tree(where string, n *domain.BlendNode) {
	if n.IsLeaf() {
		if !v.clips[n.Clip] {
			v.addf("%w: %s tree %q uses unknown clip %s", domain.ErrLookup, where, n.Name, n.Clip)
		}
		return
	}
	if n.Axis.Kind == domain.AxisSimple1D {
		if kind, ok := v.param(where+" tree", n.Axis.Param); ok && kind != domain.KindFloat {
			v.addf("%w: %s tree %q blends on %s parameter %s", domain.ErrKindMismatch, where, n.Name, kind, n.Axis.Param)
		}
	}
	for _, c := range n.Axis.Children {
		if c.Weight != "" {
			v.param(where+" tree", c.Weight)
		}
		v.tree(where, c.Node)
	}
}
