package compile

import (
	"fmt"

	"github.com/aretw0/animgraph/pkg/domain"
)

// ActiveEpsilon is the magnitude above which a float parameter counts as active.
const ActiveEpsilon = 0.001

// DefaultResetGuard holds when the device is in a state where resetting is
// safe: full-body or hand tracking (TrackingType above 2).
func (s *Session) DefaultResetGuard() domain.Condition {
	return domain.When(s.Int("TrackingType").IsGreaterThan(2))
}

// ExclusiveLayer builds a layer that keeps at most one of params active.
//
// Each parameter gets a state entered from any state once it turns active
// (|float| > ActiveEpsilon, or bool true); entering it drives every other
// listed parameter to 0/false. An extra all-off state is entered when every
// parameter is inactive and resetGuard holds. Every state also carries a
// second, networked batch mirroring each bool parameter into its
// <name>_Float shadow (1 for the active one, 0 for the rest) for use in
// blend trees.
func (s *Session) ExclusiveLayer(prefix string, params []domain.Param, resetGuard domain.Condition) (*domain.Layer, error) {
	for _, p := range params {
		if p.Kind() != domain.KindFloat && p.Kind() != domain.KindBool {
			return nil, s.fail(fmt.Errorf("%w: exclusive layer %s cannot drive %s parameter %s",
				domain.ErrUnsupportedKind, prefix, p.Kind(), p.Name()))
		}
		s.Param(p)
	}

	l := domain.NewLayer(prefix + " Exclusive States")
	waiting := l.NewState("Waiting", 0, 0)
	l.FromEntry(waiting)

	for i, p := range params {
		st := l.NewState(domain.Label(p.Name()), 1, i)
		l.FromAny(st, activeGuard(p))
		s.driveExclusive(st, params, p)
	}

	var inactive []domain.Comparison
	for _, p := range params {
		inactive = append(inactive, inactiveTerms(p)...)
	}
	off := l.NewState(prefix+" All Off", 1, len(params)+2)
	l.FromAny(off, resetGuard.AndAll(inactive...))
	s.driveExclusive(off, params, nil)

	return l, nil
}

func activeGuard(p domain.Param) domain.Condition {
	if p.Kind() == domain.KindBool {
		return domain.When(domain.Bool(p.Name()).IsEqualTo(true))
	}
	f := domain.Float(p.Name())
	return domain.When(f.IsGreaterThan(ActiveEpsilon)).Or(f.IsLessThan(-ActiveEpsilon))
}

// inactiveTerms is the complement of activeGuard: |float| <= ActiveEpsilon,
// or bool false.
func inactiveTerms(p domain.Param) []domain.Comparison {
	if p.Kind() == domain.KindBool {
		return []domain.Comparison{domain.Bool(p.Name()).IsFalse()}
	}
	f := domain.Float(p.Name())
	return []domain.Comparison{f.IsLessThan(ActiveEpsilon), f.IsGreaterThan(-ActiveEpsilon)}
}

// driveExclusive adds the local "others off" batch and the networked shadow
// batch to st. active is nil for the all-off state.
func (s *Session) driveExclusive(st *domain.State, params []domain.Param, active domain.Param) {
	st.Driving(true, func(b *domain.DriverBatch) {
		for _, p := range params {
			if active != nil && p.Name() == active.Name() {
				continue
			}
			b.Sets(p, 0)
		}
	})
	st.Driving(false, func(b *domain.DriverBatch) {
		for _, p := range params {
			if p.Kind() != domain.KindBool {
				continue
			}
			shadow := s.Float(domain.ShadowName(p.Name()))
			v := 0.0
			if active != nil && p.Name() == active.Name() {
				v = 1
			}
			b.Sets(shadow, v)
		}
	})
}
